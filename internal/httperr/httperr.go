package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

var messages = map[string]string{
	"required":                "Campo obrigatório.",
	"invalid_format":          "Formato inválido.",
	"invalid_value":           "Valor inválido.",
	"in_the_past":             "Data e hora devem estar no futuro.",
	"out_of_range":            "Valor fora do intervalo permitido.",
	"crosses_midnight":        "O atendimento não pode passar da meia-noite.",
	"vehicle_not_owned":       "Veículo não pertence ao cliente.",
	"time_conflict":           "Conflito de horário.",
	"schedule_busy":           "Agenda em uso, tente novamente.",
	"client_not_found":        "Cliente não encontrado.",
	"vehicle_not_found":       "Veículo não encontrado.",
	"service_not_found":       "Serviço não encontrado.",
	"appointment_not_found":   "Agendamento não encontrado.",
	"appointment_in_progress": "Agendamento em andamento não pode ser removido.",
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond maps a use-case error onto the HTTP taxonomy.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		zap.L().Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		Internal(c, "internal_error", "Erro interno.")
		return
	}

	status := http.StatusBadRequest
	switch be.Kind {
	case KindNotFound:
		status = http.StatusNotFound
	case KindConflict, KindState:
		status = http.StatusConflict
	}

	msg, ok := messages[be.Code]
	if !ok {
		msg = be.Code
	}

	c.JSON(status, HTTPError{
		Code:    be.Code,
		Message: msg,
		Field:   be.Field,
	})
}
