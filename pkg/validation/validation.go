package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// os erros usam o nome do campo no JSON
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	})
	return validate
}

// Struct valida s e devolve as falhas por campo; nil quando não há falhas
func Struct(s any) map[string]string {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": err.Error()}
	}

	errors := make(map[string]string, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		errors[fieldErr.Field()] = message(fieldErr)
	}
	return errors
}

func message(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "campo obrigatório"
	case "email":
		return "email inválido"
	case "max":
		return "deve ter no máximo " + fieldErr.Param() + " caracteres"
	case "min":
		return "deve ter no mínimo " + fieldErr.Param() + " caracteres"
	case "gt":
		return "deve ser maior que " + fieldErr.Param()
	case "oneof":
		return "deve ser um de: " + fieldErr.Param()
	case "datetime":
		return "deve seguir o formato " + fieldErr.Param()
	case "timezone":
		return "fuso horário inválido"
	default:
		return fieldErr.Error()
	}
}
