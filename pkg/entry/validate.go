package entry

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their on-disk names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the entry against the journal's record rules. The returned
// error, when non-nil, is a *ValidationError.
func (e *Entry) Validate() error {
	if e == nil {
		return errors.New("entry: nil entry")
	}
	var errs []error

	if err := validate.Struct(e); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		for _, fe := range fieldErrs {
			errs = append(errs, describeFieldError(fe))
		}
	}

	if e.Date.IsZero() {
		errs = append(errs, errors.New("date is required"))
	}
	if e.Text != "" && strings.TrimSpace(e.Text) == "" {
		errs = append(errs, errors.New("text must not be blank"))
	}
	if !tagsNormalized(e.Tags) {
		errs = append(errs, fmt.Errorf("tags %v are not normalized", e.Tags))
	}
	if e.Due != nil && !e.Date.IsZero() && e.Due.Before(e.Date) {
		errs = append(errs, fmt.Errorf("%w (due %s, date %s)", ErrDueBeforeDate, e.Due, e.Date))
	}
	if e.Repeat != nil {
		if e.Due == nil {
			errs = append(errs, ErrRepeatWithoutDue)
		}
		if !e.Repeat.Positive() {
			errs = append(errs, fmt.Errorf("repeat interval %s must move forward", e.Repeat))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{ID: e.ID, Errs: errs}
}

func describeFieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "oneof":
		return fmt.Errorf("%s %q must be one of %s", fe.Field(), fe.Value(), fe.Param())
	default:
		return fmt.Errorf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func tagsNormalized(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	norm := NormalizeTags(tags)
	if len(norm) != len(tags) {
		return false
	}
	for i := range tags {
		if norm[i] != tags[i] {
			return false
		}
	}
	return true
}
