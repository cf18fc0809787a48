package calculations

// RatePeriod единица, в которой задана процентная ставка
type RatePeriod string

const (
	RateMonthly RatePeriod = "monthly"
	RateAnnual  RatePeriod = "annual"
)

// PeriodUnit единица, в которой задан срок
type PeriodUnit string

const (
	PeriodMonths PeriodUnit = "months"
	PeriodYears  PeriodUnit = "years"
)

// CalculationRequest описывает план накоплений
type CalculationRequest struct {
	InitialValue       float64    `json:"initialValue"`
	MonthlyValue       float64    `json:"monthlyValue"`
	InterestRate       float64    `json:"interestRate"`
	InterestRatePeriod RatePeriod `json:"interestRatePeriod"`
	Period             int        `json:"period"`
	PeriodUnit         PeriodUnit `json:"periodUnit"`
}

// MonthlyDataPoint состояние счета на конец месяца
type MonthlyDataPoint struct {
	Month            int     `json:"month"`
	Interest         float64 `json:"interest"`
	TotalInvested    float64 `json:"totalInvested"`
	TotalInterest    float64 `json:"totalInterest"`
	AccumulatedValue float64 `json:"accumulatedValue"`
}

// CalculationResult результат симуляции сложных процентов
type CalculationResult struct {
	FinalValue    float64            `json:"finalValue"`
	TotalInvested float64            `json:"totalInvested"`
	TotalInterest float64            `json:"totalInterest"`
	MonthlyData   []MonthlyDataPoint `json:"monthlyData"`
}

// GrowthMetrics представляет метрики роста накоплений
type GrowthMetrics struct {
	ROIPercent              float64 `json:"roi_percent"`
	AnnualizedReturnPercent float64 `json:"annualized_return_percent"`
	CapitalGain             float64 `json:"capital_gain"`
	ProfitPercent           float64 `json:"profit_percent"`
	TotalInvested           float64 `json:"total_invested"`
	FinalValue              float64 `json:"final_value"`
	Years                   float64 `json:"years"`
}

// ScenarioComparison представляет результат сравнения двух планов
type ScenarioComparison struct {
	Base              CalculationResult `json:"base"`
	Alternative       CalculationResult `json:"alternative"`
	FinalValueDiff    float64           `json:"final_value_diff"`
	TotalInvestedDiff float64           `json:"total_invested_diff"`
	TotalInterestDiff float64           `json:"total_interest_diff"`
	Winner            string            `json:"winner"`
	Recommendation    string            `json:"recommendation"`
}
