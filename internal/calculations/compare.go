package calculations

import (
	"github.com/cloud-ru/compound-interest-go/pkg/utils"
)

const (
	WinnerBase        = "base"
	WinnerAlternative = "alternative"
	WinnerEqual       = "equal"
)

// CompareScenarios сравнивает два плана накоплений
func CompareScenarios(base, alternative CalculationRequest) *ScenarioComparison {
	// Рассчитываем оба плана
	baseResult := Compute(base)
	altResult := Compute(alternative)

	// Разница считается как alternative - base
	finalDiff := utils.Round2(altResult.FinalValue - baseResult.FinalValue)
	investedDiff := utils.Round2(altResult.TotalInvested - baseResult.TotalInvested)
	interestDiff := utils.Round2(altResult.TotalInterest - baseResult.TotalInterest)

	var winner, recommendation string
	switch {
	case finalDiff > 0:
		winner = WinnerAlternative
		recommendation = "The alternative plan ends with a higher balance (+" + utils.FormatBRL(finalDiff) + ")."
	case finalDiff < 0:
		winner = WinnerBase
		recommendation = "The base plan ends with a higher balance (+" + utils.FormatBRL(-finalDiff) + ")."
	default:
		winner = WinnerEqual
		recommendation = "Both plans end with the same balance."
	}

	return &ScenarioComparison{
		Base:              *baseResult,
		Alternative:       *altResult,
		FinalValueDiff:    finalDiff,
		TotalInvestedDiff: investedDiff,
		TotalInterestDiff: interestDiff,
		Winner:            winner,
		Recommendation:    recommendation,
	}
}
