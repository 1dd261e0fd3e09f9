package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erpcrm-api/internal/application/dto"
	"github.com/jhoicas/erpcrm-api/internal/domain"
	"github.com/jhoicas/erpcrm-api/pkg/logger"
)

const internalMessage = "Sunucu hatası."

// ErrorWriter traduce errores de dominio a respuestas HTTP.
// En producción el detalle de los 500 solo va al log.
type ErrorWriter struct {
	log          *logger.Logger
	hideInternal bool
}

// NewErrorWriter construye el traductor.
func NewErrorWriter(log *logger.Logger, hideInternal bool) *ErrorWriter {
	if log == nil {
		log = logger.Nop()
	}
	return &ErrorWriter{log: log, hideInternal: hideInternal}
}

// Write responde con el status y el cuerpo que corresponden a err.
func (w *ErrorWriter) Write(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		code := "VALIDATION"
		if errors.Is(err, domain.ErrDuplicate) {
			code = "DUPLICATE"
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: ve.Message, Field: ve.Field})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrReferenced):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "REFERENCED", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidState):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrTenantRequired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "TENANT_REQUIRED", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	}

	w.log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int64("tenant_id", GetTenantID(c)).
		Msg("error interno")
	body := dto.ErrorResponse{Code: "INTERNAL", Message: internalMessage}
	if !w.hideInternal {
		body.Error = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}

// paramID lee un id numérico positivo de la ruta.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: name, Message: "Geçersiz " + name + "."}
	}
	return id, nil
}

func deleted(c *fiber.Ctx, message string) error {
	return c.JSON(dto.MessageResponse{Message: message})
}
