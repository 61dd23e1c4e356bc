package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/garage-scheduler/internal/dto"
	"github.com/BruksfildServices01/garage-scheduler/internal/httperr"
	"github.com/BruksfildServices01/garage-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/garage-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/garage-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *ucAppointment.CreateAppointment
	update     *ucAppointment.UpdateAppointment
	setStatus  *ucAppointment.SetStatus
	remove     *ucAppointment.DeleteAppointment
	get        *ucAppointment.GetAppointment
	listByDate *ucAppointment.ListAppointmentsByDate
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	setStatus *ucAppointment.SetStatus,
	remove *ucAppointment.DeleteAppointment,
	get *ucAppointment.GetAppointment,
	listByDate *ucAppointment.ListAppointmentsByDate,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		update:     update,
		setStatus:  setStatus,
		remove:     remove,
		get:        get,
		listByDate: listByDate,
	}
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ActorID:                  middleware.ActorID(c),
		ClientID:                 req.ClientID,
		VehicleID:                req.VehicleID,
		ServiceID:                req.ServiceID,
		Date:                     req.Date,
		Time:                     req.Time,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
		AssignedTo:               req.AssignedTo,
		Status:                   req.Status,
		Priority:                 req.Priority,
		Notes:                    req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(ap))
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), id, ucAppointment.UpdateAppointmentInput{
		ActorID:                  middleware.ActorID(c),
		ClientID:                 req.ClientID,
		VehicleID:                req.VehicleID,
		ServiceID:                req.ServiceID,
		Date:                     req.Date,
		Time:                     req.Time,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
		AssignedTo:               req.AssignedTo.Value,
		AssignedToSet:            req.AssignedTo.Set,
		Status:                   req.Status,
		Priority:                 req.Priority,
		Notes:                    req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) SetStatus(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.setStatus.Execute(c.Request.Context(), middleware.ActorID(c), id, req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.ActorID(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

// GET /api/appointments?date=YYYY-MM-DD&assigned_to=ID
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	assignedTo, ok := optionalUintQuery(c, "assigned_to")
	if !ok {
		return
	}

	list, err := h.listByDate.Execute(c.Request.Context(), c.Query("date"), assignedTo)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// HELPERS
// ======================================================

// appointmentID writes a 404 for ids that cannot exist.
func appointmentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return uuid.Nil, false
	}
	return id, true
}
