package validators

import (
	"errors"
	"fmt"
	"math"

	"github.com/cloud-ru/compound-interest-go/internal/calculations"
	"github.com/cloud-ru/compound-interest-go/internal/config"
	"github.com/cloud-ru/compound-interest-go/pkg/utils"
)

// ErrOutOfRange возвращается, когда значение вне допустимого диапазона
var ErrOutOfRange = errors.New("value out of range")

// ErrNotFinite возвращается, когда результат расчета переполнил float64
var ErrNotFinite = errors.New("result is not a finite number")

// MaxPeriod верхняя граница целого срока, полученного из дробного ввода
const MaxPeriod = math.MaxInt32

// ClampNonNegative заменяет отрицательные и нечисловые значения нулем
func ClampNonNegative(value float64) float64 {
	if !utils.IsFinite(value) || value < 0 {
		return 0
	}
	return value
}

// Sanitize приводит запрос к области определения движка расчета.
// Отрицательные суммы, ставка и срок обнуляются, неизвестные единицы
// заменяются годовой ставкой и сроком в годах.
func Sanitize(req calculations.CalculationRequest) calculations.CalculationRequest {
	req.InitialValue = ClampNonNegative(req.InitialValue)
	req.MonthlyValue = ClampNonNegative(req.MonthlyValue)
	req.InterestRate = ClampNonNegative(req.InterestRate)
	if req.Period < 0 {
		req.Period = 0
	}
	if !req.InterestRatePeriod.Valid() {
		req.InterestRatePeriod = calculations.RateAnnual
	}
	if !req.PeriodUnit.Valid() {
		req.PeriodUnit = calculations.PeriodYears
	}
	return req
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%w: %s: значение должно быть в диапазоне [%d; %d]", ErrOutOfRange, name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckHorizon ограничивает длину симуляции на уровне сервиса
func CheckHorizon(cfg *config.Config, req calculations.CalculationRequest) error {
	return ValidateIntRange("period", req.Months(), 0, MaxMonths(cfg))
}

// MaxMonths возвращает максимальный горизонт в месяцах
func MaxMonths(cfg *config.Config) int {
	if cfg == nil || cfg.MaxMonths <= 0 {
		return config.DefaultMaxMonths
	}
	return cfg.MaxMonths
}

// WholePeriod переводит введенный срок в целое число для движка.
// Дробные годы пересчитываются в месяцы с округлением вниз: 1.5 года = 18 месяцев.
// Бесконечные и слишком большие значения насыщаются до MaxPeriod.
func WholePeriod(period float64, unit calculations.PeriodUnit) (int, calculations.PeriodUnit) {
	if math.IsNaN(period) || period <= 0 {
		return 0, unit
	}
	if unit == calculations.PeriodYears && period != math.Trunc(period) {
		return saturate(math.Floor(period * 12)), calculations.PeriodMonths
	}
	return saturate(math.Trunc(period)), unit
}

func saturate(v float64) int {
	if v >= MaxPeriod {
		return MaxPeriod
	}
	return int(v)
}

// CheckResult отклоняет результат, в котором суммы или метрики роста не конечны
func CheckResult(result *calculations.CalculationResult) error {
	if result == nil {
		return nil
	}
	growth := calculations.Growth(result, len(result.MonthlyData)-1)
	values := []struct {
		name  string
		value float64
	}{
		{"final_value", result.FinalValue},
		{"total_invested", result.TotalInvested},
		{"total_interest", result.TotalInterest},
		{"roi_percent", growth.ROIPercent},
		{"annualized_return_percent", growth.AnnualizedReturnPercent},
		{"capital_gain", growth.CapitalGain},
		{"profit_percent", growth.ProfitPercent},
	}
	for _, v := range values {
		if !utils.IsFinite(v.value) {
			return fmt.Errorf("%w: %s", ErrNotFinite, v.name)
		}
	}
	return nil
}
