package render

import (
	"github.com/cloud-ru/compound-interest-go/internal/calculations"
	"github.com/cloud-ru/compound-interest-go/internal/form"
)

// Results все, что нужно странице для показа одного расчета
type Results struct {
	Headline Headline                   `json:"headline"`
	Growth   calculations.GrowthMetrics `json:"growth"`
	Chart    ChartData                  `json:"chart"`
	Table    []TableRow                 `json:"table"`
}

// View модель страницы калькулятора.
// Results равен nil до отправки формы и после очистки.
type View struct {
	Form    FormView
	Results *Results
	Error   string
}

// FormView значения полей в том виде, в каком их показывают инпуты
type FormView struct {
	InitialValue       string
	MonthlyValue       string
	InterestRate       string
	InterestRatePeriod string
	Period             string
	PeriodUnit         string
}

// NewResults формирует представление готового расчета
func NewResults(result *calculations.CalculationResult, months int) *Results {
	return &Results{
		Headline: NewHeadline(result),
		Growth:   calculations.Growth(result, months),
		Chart:    Chart(result),
		Table:    Table(result),
	}
}

// NewView собирает модель страницы, result может быть nil
func NewView(f form.FormData, result *calculations.CalculationResult) View {
	v := f.Values()
	view := View{
		Form: FormView{
			InitialValue:       v.Get(form.FieldInitialValue),
			MonthlyValue:       v.Get(form.FieldMonthlyValue),
			InterestRate:       v.Get(form.FieldInterestRate),
			InterestRatePeriod: v.Get(form.FieldInterestRatePeriod),
			Period:             v.Get(form.FieldPeriod),
			PeriodUnit:         v.Get(form.FieldPeriodUnit),
		},
	}
	if result != nil {
		view.Results = NewResults(result, f.Request().Months())
	}
	return view
}
