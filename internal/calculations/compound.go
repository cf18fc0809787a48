package calculations

import "math"

// MonthlyRate переводит ставку в эффективную месячную.
// Годовая ставка пересчитывается геометрически: (1 + r)^(1/12) - 1.
func MonthlyRate(ratePercent float64, period RatePeriod) float64 {
	if period == RateAnnual {
		return math.Pow(1.0+ratePercent/100.0, 1.0/12.0) - 1.0
	}
	return ratePercent / 100.0
}

// maxPrealloc ограничивает заранее выделяемую под точки память
const maxPrealloc = 1 << 16

// TotalMonths возвращает горизонт симуляции в месяцах.
// Срок в годах, не помещающийся в int после умножения, насыщается до math.MaxInt.
func TotalMonths(period int, unit PeriodUnit) int {
	if period <= 0 {
		return 0
	}
	if unit == PeriodYears {
		if period > math.MaxInt/12 {
			return math.MaxInt
		}
		return period * 12
	}
	return period
}

// Compute рассчитывает помесячный рост накоплений.
//
// Проценты за месяц начисляются на баланс конца предыдущего месяца,
// после чего добавляется ежемесячный взнос, включая последний месяц.
// Внутри цикла ничего не округляется.
func Compute(req CalculationRequest) *CalculationResult {
	r := MonthlyRate(req.InterestRate, req.InterestRatePeriod)
	n := TotalMonths(req.Period, req.PeriodUnit)
	contrib := req.MonthlyValue

	balance := req.InitialValue
	invested := req.InitialValue
	cumI := 0.0

	data := make([]MonthlyDataPoint, 0, min(n, maxPrealloc)+1)
	data = append(data, MonthlyDataPoint{
		Month:            0,
		Interest:         0,
		TotalInvested:    invested,
		TotalInterest:    cumI,
		AccumulatedValue: balance,
	})

	for m := 1; m <= n; m++ {
		interest := balance * r
		cumI += interest
		balance += interest

		balance += contrib
		invested += contrib

		data = append(data, MonthlyDataPoint{
			Month:            m,
			Interest:         interest,
			TotalInvested:    invested,
			TotalInterest:    cumI,
			AccumulatedValue: balance,
		})
	}

	last := data[len(data)-1]
	return &CalculationResult{
		FinalValue:    last.AccumulatedValue,
		TotalInvested: last.TotalInvested,
		TotalInterest: last.TotalInterest,
		MonthlyData:   data,
	}
}

// Months возвращает горизонт запроса в месяцах
func (r CalculationRequest) Months() int {
	return TotalMonths(r.Period, r.PeriodUnit)
}

// Valid сообщает, известна ли единица ставки
func (p RatePeriod) Valid() bool {
	return p == RateMonthly || p == RateAnnual
}

// Valid сообщает, известна ли единица срока
func (u PeriodUnit) Valid() bool {
	return u == PeriodMonths || u == PeriodYears
}
