package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/garage-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/garage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/garage-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/garage-scheduler/internal/models"
)

type WorkingHoursHandler struct {
	store domain.WorkingHoursStore
}

func NewWorkingHoursHandler(store domain.WorkingHoursStore) *WorkingHoursHandler {
	return &WorkingHoursHandler{store: store}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time" binding:"omitempty,datetime=15:04"`
	EndTime    string `json:"end_time" binding:"omitempty,datetime=15:04"`
	LunchStart string `json:"lunch_start" binding:"omitempty,datetime=15:04"`
	LunchEnd   string `json:"lunch_end" binding:"omitempty,datetime=15:04"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,max=7,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	hours, err := h.store.ListWorkingHours(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, hours)
}

// Update replaces the whole week. Weekdays left out fall back to the shop
// default hours.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	seen := make(map[int]bool, len(req.Days))
	toSave := make([]models.WorkingHours, 0, len(req.Days))

	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.Respond(c, httperr.ErrValidation("weekday", "invalid_value"))
			return
		}
		seen[d.Weekday] = true

		if err := checkWorkingDay(d); err != nil {
			httperr.Respond(c, err)
			return
		}

		toSave = append(toSave, models.WorkingHours{
			Weekday:    d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		})
	}

	if err := h.store.ReplaceWorkingHours(c.Request.Context(), toSave); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func checkWorkingDay(d WorkingDayConfig) error {
	if !d.Active {
		return nil
	}

	if d.StartTime == "" {
		return httperr.ErrValidation("start_time", "required")
	}
	if d.EndTime == "" {
		return httperr.ErrValidation("end_time", "required")
	}

	open, _ := domain.ParseClock(d.StartTime)
	closing, _ := domain.ParseClock(d.EndTime)
	if closing <= open {
		return httperr.ErrValidation("end_time", "invalid_value")
	}

	if (d.LunchStart == "") != (d.LunchEnd == "") {
		return httperr.ErrValidation("lunch_start", "required")
	}
	if d.LunchStart != "" {
		ls, _ := domain.ParseClock(d.LunchStart)
		le, _ := domain.ParseClock(d.LunchEnd)
		if le <= ls || ls < open || le > closing {
			return httperr.ErrValidation("lunch_start", "invalid_value")
		}
	}

	return nil
}
