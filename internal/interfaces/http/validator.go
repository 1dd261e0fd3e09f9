package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erpcrm-api/internal/domain"
)

// RequestValidator decodifica el body y aplica las etiquetas `validate` de los DTO.
// Los nombres de campo de los errores son los del JSON (camelCase).
type RequestValidator struct {
	v *validator.Validate
}

// NewRequestValidator construye el validador.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{v: v}
}

// Bind BodyParser + Struct. Devuelve siempre un *domain.ValidationError.
func (r *RequestValidator) Bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return &domain.ValidationError{Field: "body", Message: "Geçersiz istek gövdesi."}
	}
	return r.Struct(out)
}

// Struct valida out. El primer campo inválido gana.
func (r *RequestValidator) Struct(out any) error {
	err := r.v.Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		e := verrs[0]
		field := fieldPath(e)
		return &domain.ValidationError{Field: field, Message: field + ": " + validationMessage(e)}
	}
	return &domain.ValidationError{Field: "body", Message: "Geçersiz istek gövdesi."}
}

// fieldPath "satirlar[1].miktar": namespace sin el nombre del struct raíz.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "zorunlu alan"
	case "email":
		return "geçersiz e-posta"
	case "min", "gte":
		if e.Kind() == reflect.String {
			return "en az " + e.Param() + " karakter olmalı"
		}
		return "en az " + e.Param() + " olmalı"
	case "max", "lte":
		if e.Kind() == reflect.String {
			return "en fazla " + e.Param() + " karakter olmalı"
		}
		return "en fazla " + e.Param() + " olmalı"
	case "gt":
		return e.Param() + " değerinden büyük olmalı"
	case "oneof":
		return "şunlardan biri olmalı: " + e.Param()
	case "dive":
		return "geçersiz eleman"
	default:
		return "geçersiz değer"
	}
}
