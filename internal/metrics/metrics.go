package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Calculations счетчик выполненных симуляций
	Calculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compound_calculations_total",
			Help: "Количество выполненных симуляций сложных процентов",
		},
		[]string{"surface", "rate_period", "period_unit"},
	)

	// HorizonMonths распределение горизонтов симуляции
	HorizonMonths = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "compound_horizon_months",
			Help:    "Длина симуляции в месяцах",
			Buckets: []float64{0, 12, 24, 60, 120, 240, 360, 600, 1200},
		},
	)

	// ToolCalls счетчик вызовов инструментов
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Общее количество вызовов инструментов",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик отклоненных запросов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Количество отклоненных запросов на расчет",
		},
		[]string{"surface", "error_type"},
	)

	// HTTPRequests счетчик HTTP запросов
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP запросы по маршрутам",
		},
		[]string{"route", "status"},
	)
)

// ObserveCalculation учитывает одну выполненную симуляцию
func ObserveCalculation(surface, ratePeriod, periodUnit string, months int) {
	Calculations.WithLabelValues(surface, ratePeriod, periodUnit).Inc()
	HorizonMonths.Observe(float64(months))
}
