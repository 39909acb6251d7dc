package storage

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/Tiliavir/typed-time-tracker/internal/model"
	"github.com/Tiliavir/typed-time-tracker/internal/timecalc"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func documentValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("day", func(fl validator.FieldLevel) bool {
			_, err := timecalc.ParseDay(fl.Field().String())
			return err == nil
		})
		_ = validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			_, err := timecalc.ParseClock(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// Validate checks every type and entry. Off-day entries may omit their type
// and times; every other entry needs both.
func Validate(doc model.Document) error {
	err := documentValidator().Struct(doc)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
}

// ValidateEntry checks a single entry.
func ValidateEntry(e model.Entry) error {
	return Validate(model.Document{Entries: []model.Entry{e}})
}

func describe(fe validator.FieldError) string {
	// Document.Entries[3].StartTime -> Entries[3].StartTime
	field := strings.TrimPrefix(fe.Namespace(), "Document.")
	switch fe.Tag() {
	case "required", "required_unless":
		return field + " is required"
	case "day":
		return fmt.Sprintf("%s: %q is not a YYYY-MM-DD date", field, fe.Value())
	case "clock":
		return fmt.Sprintf("%s: %q is not an HH:MM time", field, fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}
