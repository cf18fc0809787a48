package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/compound-interest-go/internal/calculations"
	"github.com/cloud-ru/compound-interest-go/internal/config"
	"github.com/cloud-ru/compound-interest-go/internal/logging"
	"github.com/cloud-ru/compound-interest-go/internal/metrics"
	"github.com/cloud-ru/compound-interest-go/internal/render"
	"github.com/cloud-ru/compound-interest-go/internal/validators"
)

const (
	ToolCompoundInterest = "compound_interest"
	ToolCompareScenarios = "compare_scenarios"
	ToolGrowthChart      = "growth_chart"
)

// ErrInvalidParams возвращается при неверных параметрах инструмента
var ErrInvalidParams = errors.New("invalid parameters")

// ErrUnknownTool возвращается, если инструмент не зарегистрирован
var ErrUnknownTool = errors.New("unknown tool")

// ToolHandler представляет обработчик инструмента MCP
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// CompoundInterestOutput ответ инструмента compound_interest
type CompoundInterestOutput struct {
	Result calculations.CalculationResult `json:"result"`
	Growth calculations.GrowthMetrics     `json:"growth"`
}

// Registry набор инструментов по имени
type Registry struct {
	handlers map[string]ToolHandler
}

// NewRegistry регистрирует все инструменты сервиса
func NewRegistry(cfg *config.Config, tracer trace.Tracer) *Registry {
	return &Registry{
		handlers: map[string]ToolHandler{
			ToolCompoundInterest: CompoundInterestHandler(cfg, tracer),
			ToolCompareScenarios: CompareScenariosHandler(cfg, tracer),
			ToolGrowthChart:      GrowthChartHandler(cfg, tracer),
		},
	}
}

// Names возвращает отсортированный список инструментов
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call вызывает инструмент по имени
func (r *Registry) Call(ctx context.Context, name string, params map[string]interface{}) (interface{}, error) {
	handler, ok := r.handlers[name]
	if !ok {
		metrics.ToolCalls.WithLabelValues("unknown", "not_found").Inc()
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return handler(ctx, params)
}

// CompoundInterestHandler обрабатывает запрос на симуляцию сложных процентов
func CompoundInterestHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolCompoundInterest

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		req, err := requestFromParams(params, "")
		if err != nil {
			return nil, fail(ctx, span, toolName, "validation", err)
		}
		if err := validators.CheckHorizon(cfg, req); err != nil {
			return nil, fail(ctx, span, toolName, "validation", err)
		}
		setRequestAttributes(span, "", req)

		result, growth := calculations.InvestmentCalculator(req)
		if err := validators.CheckResult(result); err != nil {
			return nil, fail(ctx, span, toolName, "overflow", err)
		}
		observe(toolName, req)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("final_value", result.FinalValue),
		)
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()

		return &CompoundInterestOutput{Result: *result, Growth: growth}, nil
	}
}

// CompareScenariosHandler сравнивает два плана: params["base"] и params["alternative"]
func CompareScenariosHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolCompareScenarios

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		plans := make([]calculations.CalculationRequest, 0, 2)
		for _, key := range []string{"base", "alternative"} {
			nested, ok := params[key].(map[string]interface{})
			if !ok {
				return nil, fail(ctx, span, toolName, "validation", fmt.Errorf("%w: %s must be an object", ErrInvalidParams, key))
			}
			req, err := requestFromParams(nested, key+".")
			if err != nil {
				return nil, fail(ctx, span, toolName, "validation", err)
			}
			if err := validators.CheckHorizon(cfg, req); err != nil {
				return nil, fail(ctx, span, toolName, "validation", fmt.Errorf("%s: %w", key, err))
			}
			setRequestAttributes(span, key+".", req)
			plans = append(plans, req)
		}

		cmp := calculations.CompareScenarios(plans[0], plans[1])
		for _, result := range []*calculations.CalculationResult{&cmp.Base, &cmp.Alternative} {
			if err := validators.CheckResult(result); err != nil {
				return nil, fail(ctx, span, toolName, "overflow", err)
			}
		}
		observe(toolName, plans[0])
		observe(toolName, plans[1])

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("winner", cmp.Winner),
		)
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()

		return cmp, nil
	}
}

// GrowthChartHandler возвращает серию для графика "вложено / накоплено"
func GrowthChartHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolGrowthChart

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		req, err := requestFromParams(params, "")
		if err != nil {
			return nil, fail(ctx, span, toolName, "validation", err)
		}
		if err := validators.CheckHorizon(cfg, req); err != nil {
			return nil, fail(ctx, span, toolName, "validation", err)
		}
		setRequestAttributes(span, "", req)

		result := calculations.Compute(req)
		if err := validators.CheckResult(result); err != nil {
			return nil, fail(ctx, span, toolName, "overflow", err)
		}
		chart := render.Chart(result)
		observe(toolName, req)

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.String("chart_unit", string(chart.Unit)),
			attribute.Int("chart_points", len(chart.Points)),
		)
		metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()

		return chart, nil
	}
}

func fail(ctx context.Context, span trace.Span, toolName, errType string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, errType)
	span.SetAttributes(attribute.String("error", errType+"_error"))
	metrics.ToolCalls.WithLabelValues(toolName, errType+"_error").Inc()
	metrics.CalculationErrors.WithLabelValues("tool", errType).Inc()

	logging.FromContext(ctx).WithComponent(logging.ComponentTools).
		WarnContext(ctx, "tool call rejected", logging.FieldTool, toolName, logging.FieldError, err)

	if errors.Is(err, ErrInvalidParams) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidParams, err)
}

func observe(surface string, req calculations.CalculationRequest) {
	metrics.ObserveCalculation(surface, string(req.InterestRatePeriod), string(req.PeriodUnit), req.Months())
}

func setRequestAttributes(span trace.Span, prefix string, req calculations.CalculationRequest) {
	span.SetAttributes(
		attribute.Float64(prefix+"initial_value", req.InitialValue),
		attribute.Float64(prefix+"monthly_value", req.MonthlyValue),
		attribute.Float64(prefix+"interest_rate", req.InterestRate),
		attribute.String(prefix+"interest_rate_period", string(req.InterestRatePeriod)),
		attribute.Int(prefix+"months", req.Months()),
	)
}
