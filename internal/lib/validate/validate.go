// Package validate выполняет клиентскую проверку запросов до отправки команды.
//
// Поверх go-playground/validator регистрируются тег notblank и правило
// порядка дат проекта. Нарушения собираются в *Error с человекочитаемыми
// сообщениями в том же формате, что и ответы API.
package validate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/teamsync/internal/models"
)

// tagDateOrder — тег нарушения порядка дат (endDate раньше startDate).
const tagDateOrder = "date_order"

// FieldError — нарушение правила для одного поля.
type FieldError struct {
	Field   string
	Message string
}

// Error — ошибка клиентской валидации. До хранилища такая ошибка не доходит.
type Error struct {
	Fields []FieldError
}

// Error объединяет сообщения всех полей через запятую.
func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, ", ")
}

// Field возвращает сообщение для поля или пустую строку.
func (e *Error) Field(name string) string {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message
		}
	}
	return ""
}

// New создаёт валидатор с зарегистрированными правилами проекта.
func New() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// В v9 нет встроенного datetime, параметр тега задаёт формат.
	_ = v.RegisterValidation("datetime", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(fl.Param(), fl.Field().String())
		return err == nil
	})
	v.RegisterStructValidation(dateOrder, models.ProjectCreateRequest{}, models.ProjectUpdateRequest{})
	return v
}

// Validator проверяет структуры запросов.
type Validator struct {
	v *validator.Validate
}

// NewValidator создаёт Validator.
func NewValidator() *Validator {
	return &Validator{v: New()}
}

// Struct проверяет структуру и возвращает *Error при нарушениях.
func (val *Validator) Struct(s any) error {
	const op = "validate.Struct"
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return FromValidationErrors(verrs)
}

// FromValidationErrors переводит ошибки валидатора в *Error.
func FromValidationErrors(errs validator.ValidationErrors) *Error {
	out := &Error{}
	for _, fe := range errs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("field %s is a required field", fe.Field())
	case "max":
		return fmt.Sprintf("field %s must be at most %s characters long", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("field %s must be at least %s characters long", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("field %s must be a valid email", fe.Field())
	case "oneof":
		return fmt.Sprintf("field %s must be one of: %s", fe.Field(), fe.Param())
	case "datetime":
		return fmt.Sprintf("field %s can contain only date in format %s", fe.Field(), fe.Param())
	case tagDateOrder:
		return fmt.Sprintf("field %s must not be earlier than StartDate", fe.Field())
	default:
		return fmt.Sprintf("field %s is not a valid", fe.Field())
	}
}

func dateOrder(sl validator.StructLevel) {
	var start, end *string
	switch r := sl.Current().Interface().(type) {
	case models.ProjectCreateRequest:
		start, end = r.StartDate, r.EndDate
	case models.ProjectUpdateRequest:
		start, end = r.StartDate, r.EndDate
	default:
		return
	}
	if start == nil || end == nil {
		return
	}
	s, err := time.Parse(models.DateLayout, *start)
	if err != nil {
		return
	}
	e, err := time.Parse(models.DateLayout, *end)
	if err != nil {
		return
	}
	if e.Before(s) {
		sl.ReportError(end, "EndDate", "EndDate", tagDateOrder, "")
	}
}
