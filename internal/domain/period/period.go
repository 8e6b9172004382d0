// Package period provides the effective-period value threaded through specification
// resolution. The registry core treats a Period as opaque; only concrete providers
// look inside it.
package period

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Period errors
var (
	ErrInvalidPeriod = errors.New("invalid period format")
)

// Period is an effective time range, identified by year and month.
type Period interface {
	// Code returns year*100 + month, e.g. 202401.
	Code() int32
	Year() int16
	Month() int16
}

// Month is a calendar month period.
type Month struct {
	year  int16
	month int16
}

// Compile-time check that Month implements Period.
var _ Period = Month{}

// NewMonth creates a period for the given year and month (1-12).
func NewMonth(year, month int16) (Month, error) {
	if year < 1 || month < 1 || month > 12 {
		return Month{}, fmt.Errorf("%w: year %d month %d", ErrInvalidPeriod, year, month)
	}
	return Month{year: year, month: month}, nil
}

// MustMonth is like NewMonth but panics on invalid input. Intended for static data
// and tests.
func MustMonth(year, month int16) Month {
	m, err := NewMonth(year, month)
	if err != nil {
		panic(err)
	}
	return m
}

// FromCode creates a period from a year*100+month code.
func FromCode(code int32) (Month, error) {
	if code < 0 || code/100 > math.MaxInt16 {
		return Month{}, fmt.Errorf("%w: code %d", ErrInvalidPeriod, code)
	}
	return NewMonth(int16(code/100), int16(code%100))
}

// Parse parses a period in "YYYY-MM" form.
func Parse(s string) (Month, error) {
	yearPart, monthPart, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok || len(yearPart) != 4 || len(monthPart) != 2 {
		return Month{}, fmt.Errorf("%w: %q (want YYYY-MM)", ErrInvalidPeriod, s)
	}
	year, err := strconv.ParseInt(yearPart, 10, 16)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	month, err := strconv.ParseInt(monthPart, 10, 16)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return NewMonth(int16(year), int16(month))
}

// Code returns year*100 + month.
func (m Month) Code() int32 {
	return int32(m.year)*100 + int32(m.month)
}

// Year returns the calendar year.
func (m Month) Year() int16 {
	return m.year
}

// Month returns the calendar month, 1-12.
func (m Month) Month() int16 {
	return m.month
}

// String returns the period in "YYYY-MM" form.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.year, m.month)
}

// Compare orders two periods chronologically.
func Compare(a, b Period) int {
	return cmp.Compare(a.Code(), b.Code())
}
