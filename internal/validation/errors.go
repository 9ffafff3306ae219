package validation

import (
	"errors"

	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// FieldError ties a rule failure to the input field that caused it.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Field runs rule against value and labels any failure with field.
func Field[T any](field string, value T, rule Rule[T]) (T, error) {
	out, err := rule(value)
	if err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			return out, fe
		}
		return out, &FieldError{Field: field, Message: err.Error()}
	}
	return out, nil
}

// Collector accumulates field errors across a whole payload.
type Collector struct {
	errs []*FieldError
}

// Check validates value with rule, recording a failure under field.
func Check[T any](c *Collector, field string, value T, rule Rule[T]) T {
	out, err := Field(field, value, rule)
	if err != nil {
		c.Add(err)
	}
	return out
}

// CheckOptional validates *value when present and returns a pointer to the
// cleaned value, or nil when absent.
func CheckOptional[T any](c *Collector, field string, value *T, rule Rule[T]) *T {
	if value == nil {
		return nil
	}
	out := Check(c, field, *value, rule)
	return &out
}

// Add records err. Errors that are not FieldErrors are filed under "body".
func (c *Collector) Add(err error) {
	if err == nil {
		return
	}
	var fe *FieldError
	if !errors.As(err, &fe) {
		fe = &FieldError{Field: "body", Message: err.Error()}
	}
	c.errs = append(c.errs, fe)
}

// Err returns an InvalidInput error describing every recorded failure, or nil.
func (c *Collector) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	fields := make(map[string]string, len(c.errs))
	for _, fe := range c.errs {
		if _, seen := fields[fe.Field]; !seen {
			fields[fe.Field] = fe.Message
		}
	}
	return apperrors.NewInvalidInput(c.errs[0].Message, map[string]any{"fields": fields})
}
