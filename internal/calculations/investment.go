package calculations

import (
	"math"

	"github.com/cloud-ru/compound-interest-go/pkg/utils"
)

// Growth рассчитывает метрики роста по готовому результату симуляции
func Growth(result *CalculationResult, months int) GrowthMetrics {
	finalValue := result.FinalValue
	totalInvested := result.TotalInvested
	totalInterest := result.TotalInterest

	// ROI (Return on Investment) в процентах
	var roiPercent float64
	if totalInvested > 0 {
		roiPercent = utils.Round2(((finalValue - totalInvested) / totalInvested) * 100)
	}

	// Средняя годовая доходность
	years := float64(months) / 12.0
	var annualizedReturn float64
	if years > 0 && totalInvested > 0 {
		annualizedReturn = utils.Round2((math.Pow(finalValue/totalInvested, 1.0/years) - 1.0) * 100)
	}

	// Доля процентов в итоговой сумме
	var profitPercent float64
	if finalValue > 0 {
		profitPercent = utils.Round2((totalInterest / finalValue) * 100)
	}

	return GrowthMetrics{
		ROIPercent:              roiPercent,
		AnnualizedReturnPercent: annualizedReturn,
		CapitalGain:             utils.Round2(finalValue - totalInvested),
		ProfitPercent:           profitPercent,
		TotalInvested:           utils.Round2(totalInvested),
		FinalValue:              utils.Round2(finalValue),
		Years:                   utils.Round2(years),
	}
}

// InvestmentCalculator выполняет симуляцию и сразу считает метрики роста
func InvestmentCalculator(req CalculationRequest) (*CalculationResult, GrowthMetrics) {
	result := Compute(req)
	return result, Growth(result, req.Months())
}
