package age

import (
	"strings"
	"time"

	apperrors "github.com/agbru/agecalc/internal/errors"
)

// Person is an input record: a name and a raw, date-like birth date.
type Person struct {
	Name      string `json:"name" yaml:"name"`
	BirthDate string `json:"birthDate" yaml:"birthDate"`
}

// ComputedPerson is an output record. Age is negative when the birth date
// lies after the reference date.
type ComputedPerson struct {
	Name string `json:"name" yaml:"name"`
	Age  int    `json:"age" yaml:"age"`
}

// dateLayouts are tried in order by ParseBirthDate.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
}

// ParseBirthDate converts a raw birth date into a calendar date. time.Parse
// rejects out-of-range days, so "2023-02-30" is invalid.
func ParseBirthDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, apperrors.WrapError(apperrors.ErrInvalidDate, "empty birth date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.WrapError(apperrors.ErrInvalidDate, "unrecognized birth date %q", raw)
}

// Calculate returns the age in whole years at now for someone born at birth.
func Calculate(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	return years
}

// Compute validates p's birth date and returns its age at now.
// The error is an apperrors.InvalidBirthDateError naming the person.
func Compute(p Person, now time.Time) (ComputedPerson, error) {
	birth, err := ParseBirthDate(p.BirthDate)
	if err != nil {
		return ComputedPerson{}, apperrors.InvalidBirthDateError{Person: p.Name, Value: p.BirthDate, Cause: err}
	}
	return ComputedPerson{Name: p.Name, Age: Calculate(birth, now)}, nil
}
