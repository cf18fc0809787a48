package tools

import (
	"fmt"

	"github.com/cloud-ru/compound-interest-go/internal/calculations"
	"github.com/cloud-ru/compound-interest-go/internal/validators"
)

// requestFromParams извлекает план из параметров инструмента.
// Суммы, ставка и срок обязательны; единицы по умолчанию годовые.
func requestFromParams(params map[string]interface{}, prefix string) (calculations.CalculationRequest, error) {
	var req calculations.CalculationRequest

	initialValue, err := number(params, prefix, "initial_value")
	if err != nil {
		return req, err
	}
	monthlyValue, err := number(params, prefix, "monthly_value")
	if err != nil {
		return req, err
	}
	interestRate, err := number(params, prefix, "interest_rate")
	if err != nil {
		return req, err
	}
	periodFloat, err := number(params, prefix, "period")
	if err != nil {
		return req, err
	}

	ratePeriod := calculations.RateAnnual
	if raw, ok := params["interest_rate_period"]; ok {
		s, ok := raw.(string)
		if !ok || !calculations.RatePeriod(s).Valid() {
			return req, fmt.Errorf("%w: %sinterest_rate_period", ErrInvalidParams, prefix)
		}
		ratePeriod = calculations.RatePeriod(s)
	}

	periodUnit := calculations.PeriodYears
	if raw, ok := params["period_unit"]; ok {
		s, ok := raw.(string)
		if !ok || !calculations.PeriodUnit(s).Valid() {
			return req, fmt.Errorf("%w: %speriod_unit", ErrInvalidParams, prefix)
		}
		periodUnit = calculations.PeriodUnit(s)
	}

	period, periodUnit := validators.WholePeriod(periodFloat, periodUnit)
	return validators.Sanitize(calculations.CalculationRequest{
		InitialValue:       initialValue,
		MonthlyValue:       monthlyValue,
		InterestRate:       interestRate,
		InterestRatePeriod: ratePeriod,
		Period:             period,
		PeriodUnit:         periodUnit,
	}), nil
}

func number(params map[string]interface{}, prefix, key string) (float64, error) {
	switch v := params[key].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: %s%s", ErrInvalidParams, prefix, key)
	}
}
