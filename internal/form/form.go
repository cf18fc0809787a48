// Package form turns raw user input into a calculation request.
//
// Currency fields are masked the way a cash register works: every typed
// digit shifts in from the right and the last two digits are cents, so
// "1.234,56", "123456" and "R$ 1234,56" all mean 1234.56. Free-typed numbers
// are parsed leniently and clamped to zero. None of this is done by the
// engine itself.
package form

import (
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/cloud-ru/compound-interest-go/internal/calculations"
	"github.com/cloud-ru/compound-interest-go/internal/validators"
	"github.com/cloud-ru/compound-interest-go/pkg/utils"
)

// Field names used by the HTML form and url.Values
const (
	FieldInitialValue       = "initialValue"
	FieldMonthlyValue       = "monthlyValue"
	FieldInterestRate       = "interestRate"
	FieldInterestRatePeriod = "interestRatePeriod"
	FieldPeriod             = "period"
	FieldPeriodUnit         = "periodUnit"
)

// FormData is the normalized state of the calculator form
type FormData struct {
	InitialValue       float64
	MonthlyValue       float64
	InterestRate       float64
	InterestRatePeriod calculations.RatePeriod
	Period             float64
	PeriodUnit         calculations.PeriodUnit
}

// Defaults returns the initial form state
func Defaults() FormData {
	return FormData{
		InitialValue:       0,
		MonthlyValue:       0,
		InterestRate:       8,
		InterestRatePeriod: calculations.RateAnnual,
		Period:             10,
		PeriodUnit:         calculations.PeriodYears,
	}
}

// Clear resets the form, discarding whatever was typed
func Clear() FormData {
	return Defaults()
}

// FromValues reads submitted fields on top of the defaults.
// A field that is present but empty counts as zero.
func FromValues(values url.Values) FormData {
	f := Defaults()
	if _, ok := values[FieldInitialValue]; ok {
		f.InitialValue = ParseCurrency(values.Get(FieldInitialValue))
	}
	if _, ok := values[FieldMonthlyValue]; ok {
		f.MonthlyValue = ParseCurrency(values.Get(FieldMonthlyValue))
	}
	if _, ok := values[FieldInterestRate]; ok {
		f.InterestRate = ParseNumber(values.Get(FieldInterestRate))
	}
	if _, ok := values[FieldInterestRatePeriod]; ok {
		f.InterestRatePeriod = ParseRatePeriod(values.Get(FieldInterestRatePeriod))
	}
	if _, ok := values[FieldPeriod]; ok {
		f.Period = ParseNumber(values.Get(FieldPeriod))
	}
	if _, ok := values[FieldPeriodUnit]; ok {
		f.PeriodUnit = ParsePeriodUnit(values.Get(FieldPeriodUnit))
	}
	return f
}

// Request builds the engine input. Fractional years become whole months,
// other fractions are truncated.
func (f FormData) Request() calculations.CalculationRequest {
	period, unit := validators.WholePeriod(f.Period, f.PeriodUnit)
	return validators.Sanitize(calculations.CalculationRequest{
		InitialValue:       f.InitialValue,
		MonthlyValue:       f.MonthlyValue,
		InterestRate:       f.InterestRate,
		InterestRatePeriod: f.InterestRatePeriod,
		Period:             period,
		PeriodUnit:         unit,
	})
}

// Values renders the form back into submittable fields
func (f FormData) Values() url.Values {
	v := url.Values{}
	v.Set(FieldInitialValue, DisplayCurrency(f.InitialValue))
	v.Set(FieldMonthlyValue, DisplayCurrency(f.MonthlyValue))
	v.Set(FieldInterestRate, strconv.FormatFloat(f.InterestRate, 'f', -1, 64))
	v.Set(FieldInterestRatePeriod, string(f.InterestRatePeriod))
	v.Set(FieldPeriod, strconv.FormatFloat(f.Period, 'f', -1, 64))
	v.Set(FieldPeriodUnit, string(f.PeriodUnit))
	return v
}

// ParseCurrency keeps only the digits of raw and reads them as cents
func ParseCurrency(raw string) float64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return 0
	}

	if cents, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return utils.CentsToAmount(cents)
	}

	// more digits than int64 holds
	cents, err := decimal.NewFromString(digits)
	if err != nil {
		return 0
	}
	return cents.Shift(-2).InexactFloat64()
}

// DisplayCurrency formats an amount the way the currency inputs show it
func DisplayCurrency(value float64) string {
	return utils.FormatAmount(value)
}

// ParseNumber reads a free-typed number. Empty or unparsable input is zero,
// negatives are clamped to zero and a decimal comma is accepted.
func ParseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimRightFunc(s, func(r rune) bool { return r == '%' || unicode.IsSpace(r) })

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return validators.ClampNonNegative(v)
}

// ParseRatePeriod accepts the enum value or the form label
func ParseRatePeriod(raw string) calculations.RatePeriod {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(calculations.RateMonthly), "mensal", "a.m.":
		return calculations.RateMonthly
	case string(calculations.RateAnnual), "anual", "a.a.":
		return calculations.RateAnnual
	default:
		return Defaults().InterestRatePeriod
	}
}

// ParsePeriodUnit accepts the enum value or the form label
func ParsePeriodUnit(raw string) calculations.PeriodUnit {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(calculations.PeriodMonths), "month", "meses", "mês(es)":
		return calculations.PeriodMonths
	case string(calculations.PeriodYears), "year", "anos", "ano(s)":
		return calculations.PeriodYears
	default:
		return Defaults().PeriodUnit
	}
}
