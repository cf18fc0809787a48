package render

import (
	"github.com/cloud-ru/compound-interest-go/internal/calculations"
	"github.com/cloud-ru/compound-interest-go/pkg/utils"
)

// YearlyThreshold число месяцев, после которого график строится по годам
const YearlyThreshold = 24

// ChartUnit единица оси X графика
type ChartUnit string

const (
	ChartMonths ChartUnit = "months"
	ChartYears  ChartUnit = "years"
)

// Figure одна итоговая цифра
type Figure struct {
	Label     string  `json:"label"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

// Headline три итоговые цифры результата
type Headline struct {
	FinalValue    Figure `json:"final_value"`
	TotalInvested Figure `json:"total_invested"`
	TotalInterest Figure `json:"total_interest"`
}

// ChartPoint точка графика "вложено / накоплено"
type ChartPoint struct {
	Period      int     `json:"period"`
	Invested    float64 `json:"invested"`
	Accumulated float64 `json:"accumulated"`
}

// ChartData данные для линейного графика
type ChartData struct {
	Unit   ChartUnit    `json:"unit"`
	Points []ChartPoint `json:"points"`
}

// TableRow строка помесячной таблицы
type TableRow struct {
	Month            int    `json:"month"`
	Interest         string `json:"interest"`
	TotalInvested    string `json:"total_invested"`
	TotalInterest    string `json:"total_interest"`
	AccumulatedValue string `json:"accumulated_value"`
}

func figure(label string, value float64) Figure {
	return Figure{Label: label, Value: utils.Round2(value), Formatted: utils.FormatBRL(value)}
}

// NewHeadline формирует итоговые цифры
func NewHeadline(result *calculations.CalculationResult) Headline {
	return Headline{
		FinalValue:    figure("Final value", result.FinalValue),
		TotalInvested: figure("Total invested", result.TotalInvested),
		TotalInterest: figure("Total interest", result.TotalInterest),
	}
}

// Chart строит серию для графика.
// Длинные серии прореживаются до годовых точек (month % 12 == 0).
func Chart(result *calculations.CalculationResult) ChartData {
	yearly := len(result.MonthlyData)-1 > YearlyThreshold

	chart := ChartData{Unit: ChartMonths}
	if yearly {
		chart.Unit = ChartYears
	}

	points := make([]ChartPoint, 0, len(result.MonthlyData))
	for _, p := range result.MonthlyData {
		period := p.Month
		if yearly {
			if p.Month%12 != 0 {
				continue
			}
			period = p.Month / 12
		}
		points = append(points, ChartPoint{
			Period:      period,
			Invested:    utils.Round2(p.TotalInvested),
			Accumulated: utils.Round2(p.AccumulatedValue),
		})
	}
	chart.Points = points
	return chart
}

// Table формирует строки таблицы для каждого месяца
func Table(result *calculations.CalculationResult) []TableRow {
	rows := make([]TableRow, 0, len(result.MonthlyData))
	for _, p := range result.MonthlyData {
		rows = append(rows, TableRow{
			Month:            p.Month,
			Interest:         utils.FormatBRL(p.Interest),
			TotalInvested:    utils.FormatBRL(p.TotalInvested),
			TotalInterest:    utils.FormatBRL(p.TotalInterest),
			AccumulatedValue: utils.FormatBRL(p.AccumulatedValue),
		})
	}
	return rows
}
