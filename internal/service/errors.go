package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Таксономия ошибок сервисного слоя. HTTP-слой отображает их в коды ответа,
// всё остальное считается внутренней ошибкой.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidReference   = errors.New("referenced user does not exist")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError описывает, что именно не так со входными данными.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(format string, args ...any) error {
	return &ValidationError{Fields: []string{fmt.Sprintf(format, args...)}}
}

var validate = newValidator()

// newValidator называет поля по json-тегам, чтобы сообщения совпадали с телом запроса.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct проверяет теги validate и переводит ошибки в ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			fields = append(fields, fmt.Sprintf("field %s: %s", fe.Field(), fe.Tag()))
		}
		return &ValidationError{Fields: fields}
	}
	return &ValidationError{Fields: []string{err.Error()}}
}
