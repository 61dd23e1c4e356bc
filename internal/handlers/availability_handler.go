package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/garage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/garage-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/garage-scheduler/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	getAvailability *ucAppointment.GetAvailability
}

func NewAvailabilityHandler(getAvailability *ucAppointment.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{getAvailability: getAvailability}
}

// GET /api/availability?date=YYYY-MM-DD&duration=60&assigned_to=ID
func (h *AvailabilityHandler) Get(c *gin.Context) {
	in := ucAppointment.AvailabilityInput{
		Date: c.Query("date"),
	}

	if raw := c.Query("duration"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			httperr.Respond(c, httperr.ErrValidation("duration", "invalid_format"))
			return
		}
		in.DurationMinutes = d
	}

	assignedTo, ok := optionalUintQuery(c, "assigned_to")
	if !ok {
		return
	}
	in.AssignedTo = assignedTo

	out, err := h.getAvailability.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}
