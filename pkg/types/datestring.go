package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateString is returned when a value is not a valid "YYYY-MM-DD" date
var ErrInvalidDateString = errors.New("invalid date string format")

const dateLayout = "2006-01-02"

// DateString is a local calendar date in "YYYY-MM-DD" form
type DateString string

// NewDateString returns the local calendar date of t
func NewDateString(t time.Time) DateString {
	return DateString(t.Format(dateLayout))
}

// NewDateStringFromString validates s and returns it as a DateString
func NewDateStringFromString(s string) (DateString, error) {
	parsed, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateString, s)
	}
	return DateString(parsed.Format(dateLayout)), nil
}

// Time returns midnight of the date in loc
func (d DateString) Time(loc *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation(dateLayout, string(d), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateString, string(d))
	}
	return parsed, nil
}

// At combines the date with a wall-clock time in loc
func (d DateString) At(t TimeString, loc *time.Location) (time.Time, error) {
	day, err := d.Time(loc)
	if err != nil {
		return time.Time{}, err
	}
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(minutes) * time.Minute), nil
}

// AddDays shifts the date by n calendar days
func (d DateString) AddDays(n int) (DateString, error) {
	day, err := d.Time(time.UTC)
	if err != nil {
		return "", err
	}
	return NewDateString(day.AddDate(0, 0, n)), nil
}

func (d DateString) Validate() error {
	_, err := d.Time(time.UTC)
	return err
}

func (d DateString) IsZero() bool {
	return d == ""
}

// IsBefore compares two valid dates. Invalid values are never before anything.
func (d DateString) IsBefore(other DateString) bool {
	if d.Validate() != nil || other.Validate() != nil {
		return false
	}
	// Лексикографический порядок совпадает с календарным для YYYY-MM-DD
	return d < other
}

func (d DateString) String() string {
	return string(d)
}

// Scan implements sql.Scanner for DATE columns
func (d *DateString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = ""
		return nil
	case time.Time:
		*d = DateString(v.Format(dateLayout))
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDateString, src)
	}
}

func (d *DateString) scanString(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := NewDateStringFromString(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer
func (d DateString) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return string(d), nil
}
