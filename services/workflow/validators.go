package workflow

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"medibook/models"
)

// FieldValidator checks a candidate value against the current draft. now is
// injected so date rules never read ambient wall-clock time.
type FieldValidator func(d models.BookingDraft, value string, now time.Time) *ValidationError

const dateLayout = "2006-01-02"

var timePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

func nonEmpty(field string) FieldValidator {
	return func(_ models.BookingDraft, value string, _ time.Time) *ValidationError {
		if strings.TrimSpace(value) == "" {
			return newValidationError(CodeEmptyRequiredField, field, "must not be empty")
		}
		return nil
	}
}

// dateNotPast accepts "YYYY-MM-DD" dates on or after today. The candidate is
// parsed in the clock's own location so "today" lines up with local midnight.
func dateNotPast(field string) FieldValidator {
	return func(_ models.BookingDraft, value string, now time.Time) *ValidationError {
		t, err := time.ParseInLocation(dateLayout, value, now.Location())
		if err != nil {
			return newValidationError(CodeOutOfRange, field, "must be a YYYY-MM-DD date")
		}
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if t.Before(today) {
			return newValidationError(CodeOutOfRange, field, "must not be in the past")
		}
		return nil
	}
}

func timeOfDay(field string) FieldValidator {
	return func(_ models.BookingDraft, value string, _ time.Time) *ValidationError {
		if !timePattern.MatchString(value) {
			return newValidationError(CodeOutOfRange, field, "must be a HH:MM time")
		}
		return nil
	}
}

// enumOf accepts only the listed values. Membership failures reuse the
// out-of-range code: the value lies outside the allowed set.
func enumOf(field string, allowed ...string) FieldValidator {
	return func(_ models.BookingDraft, value string, _ time.Time) *ValidationError {
		for _, a := range allowed {
			if value == a {
				return nil
			}
		}
		return newValidationError(CodeOutOfRange, field,
			fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	}
}

func intInRange(field string, min, max int) FieldValidator {
	return func(_ models.BookingDraft, value string, _ time.Time) *ValidationError {
		n, err := strconv.Atoi(value)
		if err != nil {
			return newValidationError(CodeOutOfRange, field, "must be a whole number")
		}
		if n < min || n > max {
			return newValidationError(CodeOutOfRange, field,
				fmt.Sprintf("must be between %d and %d", min, max))
		}
		return nil
	}
}

// notBefore enforces field >= other (both "YYYY-MM-DD"), e.g. endDate against
// startDate. When the other field is still unset the rule passes; it is
// re-checked by step completion once both are present.
func notBefore(field, other string) FieldValidator {
	return func(d models.BookingDraft, value string, _ time.Time) *ValidationError {
		t, err := time.Parse(dateLayout, value)
		if err != nil {
			return newValidationError(CodeOutOfRange, field, "must be a YYYY-MM-DD date")
		}
		ov, ok := d.Get(other)
		if !ok {
			return nil
		}
		ot, err := time.Parse(dateLayout, ov)
		if err != nil {
			return nil
		}
		if t.Before(ot) {
			return newValidationError(CodeCrossFieldViolation, field,
				fmt.Sprintf("must not be before %s", other))
		}
		return nil
	}
}

func allOf(vs ...FieldValidator) FieldValidator {
	return func(d models.BookingDraft, value string, now time.Time) *ValidationError {
		for _, v := range vs {
			if err := v(d, value, now); err != nil {
				return err
			}
		}
		return nil
	}
}

// phoneNumber is deliberately loose: digits, spaces and a leading plus.
func phoneNumber(field string) FieldValidator {
	re := regexp.MustCompile(`^\+?[\d\s-]{7,20}$`)
	return func(_ models.BookingDraft, value string, _ time.Time) *ValidationError {
		if !re.MatchString(value) {
			return newValidationError(CodeOutOfRange, field, "must be a phone number")
		}
		return nil
	}
}

func floatValue(field string) FieldValidator {
	return func(_ models.BookingDraft, value string, _ time.Time) *ValidationError {
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return newValidationError(CodeOutOfRange, field, "must be a number")
		}
		return nil
	}
}
