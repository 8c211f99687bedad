package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MaxNameLength       = 100
	MinSegmentSizeHours = 1
	MaxSegmentSizeHours = 24
	MinIntervalHours    = 1
	MaxIntervalHours    = 24
	dateLayout          = "2006-01-02"
)

// Error marks an input validation failure, so transports can map it to a
// bad-request response without matching message text.
type Error struct {
	msg string
}

func (e *Error) Error() string {
	return e.msg
}

// Errorf creates a validation error.
func Errorf(format string, args ...interface{}) error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// IsError reports whether err is (or wraps) a validation error.
func IsError(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}

// ValidateDate validates a "YYYY-MM-DD" calendar date string.
func ValidateDate(date string) error {
	if date == "" {
		return Errorf("date is required")
	}

	if _, err := time.Parse(dateLayout, date); err != nil {
		return Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}

	return nil
}

// ValidateDateRange validates both dates and their ordering.
func ValidateDateRange(startDate, endDate string) error {
	if err := ValidateDate(startDate); err != nil {
		return err
	}

	if err := ValidateDate(endDate); err != nil {
		return err
	}

	if startDate > endDate {
		return Errorf("start date %s is after end date %s", startDate, endDate)
	}

	return nil
}

// ValidateName validates goal and template names.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return Errorf("name is required")
	}

	if len(name) > MaxNameLength {
		return Errorf("name is too long (max %d characters)", MaxNameLength)
	}

	return nil
}

// ValidateIntervalHours validates a reminder interval.
func ValidateIntervalHours(hours int) error {
	if hours < MinIntervalHours || hours > MaxIntervalHours {
		return Errorf("interval must be between %d and %d hours", MinIntervalHours, MaxIntervalHours)
	}

	return nil
}
