package tools

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/cloud-ru/compound-interest-go/internal/calculations"
	"github.com/cloud-ru/compound-interest-go/internal/config"
	"github.com/cloud-ru/compound-interest-go/internal/render"
	"github.com/cloud-ru/compound-interest-go/internal/validators"
)

func newRegistry() *Registry {
	cfg := &config.Config{MaxMonths: 600}
	return NewRegistry(cfg, noop.NewTracerProvider().Tracer("test"))
}

func plan() map[string]interface{} {
	return map[string]interface{}{
		"initial_value":        1000.0,
		"monthly_value":        100.0,
		"interest_rate":        12.0,
		"interest_rate_period": "annual",
		"period":               1.0,
		"period_unit":          "years",
	}
}

func TestCompoundInterestHandler(t *testing.T) {
	tests := []struct {
		name      string
		params    func() map[string]interface{}
		wantError bool
		check     func(*testing.T, *CompoundInterestOutput)
	}{
		{
			name:   "one year plan",
			params: plan,
			check: func(t *testing.T, out *CompoundInterestOutput) {
				if len(out.Result.MonthlyData) != 13 {
					t.Errorf("expected 13 points, got %d", len(out.Result.MonthlyData))
				}
				if out.Result.TotalInvested != 2200 {
					t.Errorf("expected invested 2200, got %f", out.Result.TotalInvested)
				}
				if out.Growth.Years != 1 {
					t.Errorf("expected 1 year, got %f", out.Growth.Years)
				}
			},
		},
		{
			name: "units default to annual rate and years",
			params: func() map[string]interface{} {
				p := plan()
				delete(p, "interest_rate_period")
				delete(p, "period_unit")
				return p
			},
			check: func(t *testing.T, out *CompoundInterestOutput) {
				if len(out.Result.MonthlyData) != 13 {
					t.Errorf("expected 13 points, got %d", len(out.Result.MonthlyData))
				}
			},
		},
		{
			name: "negative values are clamped",
			params: func() map[string]interface{} {
				p := plan()
				p["initial_value"] = -500.0
				p["interest_rate"] = -1.0
				return p
			},
			check: func(t *testing.T, out *CompoundInterestOutput) {
				if out.Result.TotalInterest != 0 {
					t.Errorf("expected zero interest, got %f", out.Result.TotalInterest)
				}
				if out.Result.FinalValue != 1200 {
					t.Errorf("expected final value 1200, got %f", out.Result.FinalValue)
				}
			},
		},
		{
			name: "missing amount",
			params: func() map[string]interface{} {
				p := plan()
				delete(p, "monthly_value")
				return p
			},
			wantError: true,
		},
		{
			name: "wrong type",
			params: func() map[string]interface{} {
				p := plan()
				p["period"] = "ten"
				return p
			},
			wantError: true,
		},
		{
			name: "unknown unit",
			params: func() map[string]interface{} {
				p := plan()
				p["period_unit"] = "weeks"
				return p
			},
			wantError: true,
		},
		{
			name: "horizon above limit",
			params: func() map[string]interface{} {
				p := plan()
				p["period"] = 51.0
				return p
			},
			wantError: true,
		},
	}

	registry := newRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := registry.Call(context.Background(), ToolCompoundInterest, tt.params())
			if (err != nil) != tt.wantError {
				t.Fatalf("Call() error = %v, wantError %v", err, tt.wantError)
			}
			if tt.wantError {
				if !errors.Is(err, ErrInvalidParams) {
					t.Errorf("expected ErrInvalidParams, got %v", err)
				}
				return
			}
			tt.check(t, out.(*CompoundInterestOutput))
		})
	}
}

func TestHorizonErrorKeepsSentinel(t *testing.T) {
	p := plan()
	p["period"] = 100.0

	_, err := newRegistry().Call(context.Background(), ToolCompoundInterest, p)
	if !errors.Is(err, validators.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange in chain, got %v", err)
	}
}

func TestOverflowIsRejected(t *testing.T) {
	p := plan()
	p["interest_rate"] = 10000.0
	p["interest_rate_period"] = "monthly"
	p["period"] = 50.0

	registry := newRegistry()
	for _, name := range []string{ToolCompoundInterest, ToolGrowthChart} {
		_, err := registry.Call(context.Background(), name, p)
		if !errors.Is(err, validators.ErrNotFinite) {
			t.Errorf("%s: expected ErrNotFinite in chain, got %v", name, err)
		}
	}

	_, err := registry.Call(context.Background(), ToolCompareScenarios, map[string]interface{}{
		"base":        plan(),
		"alternative": p,
	})
	if !errors.Is(err, validators.ErrNotFinite) {
		t.Errorf("compare: expected ErrNotFinite in chain, got %v", err)
	}
}

func TestFractionalYears(t *testing.T) {
	p := plan()
	p["period"] = 1.5

	out, err := newRegistry().Call(context.Background(), ToolCompoundInterest, p)
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	result := out.(*CompoundInterestOutput).Result
	if len(result.MonthlyData) != 19 {
		t.Errorf("expected 19 points for 1.5 years, got %d", len(result.MonthlyData))
	}
}

func TestHugePeriodHitsHorizon(t *testing.T) {
	p := plan()
	p["period"] = 1e30

	_, err := newRegistry().Call(context.Background(), ToolCompoundInterest, p)
	if !errors.Is(err, validators.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange in chain, got %v", err)
	}
}

func TestCompareScenariosHandler(t *testing.T) {
	registry := newRegistry()

	alt := plan()
	alt["monthly_value"] = 300.0

	out, err := registry.Call(context.Background(), ToolCompareScenarios, map[string]interface{}{
		"base":        plan(),
		"alternative": alt,
	})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	cmp := out.(*calculations.ScenarioComparison)
	if cmp.Winner != calculations.WinnerAlternative {
		t.Errorf("expected alternative to win, got %s", cmp.Winner)
	}
	if math.Abs(cmp.TotalInvestedDiff-2400) > 1e-9 {
		t.Errorf("expected invested diff 2400, got %f", cmp.TotalInvestedDiff)
	}

	_, err = registry.Call(context.Background(), ToolCompareScenarios, map[string]interface{}{"base": plan()})
	if !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams for missing alternative, got %v", err)
	}
}

func TestGrowthChartHandler(t *testing.T) {
	p := plan()
	p["period"] = 10.0

	out, err := newRegistry().Call(context.Background(), ToolGrowthChart, p)
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	chart := out.(render.ChartData)
	if chart.Unit != render.ChartYears {
		t.Errorf("expected yearly chart, got %s", chart.Unit)
	}
	if len(chart.Points) != 11 {
		t.Errorf("expected 11 points, got %d", len(chart.Points))
	}
}

func TestUnknownTool(t *testing.T) {
	registry := newRegistry()
	_, err := registry.Call(context.Background(), "loan_schedule", nil)
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("expected ErrUnknownTool, got %v", err)
	}

	names := registry.Names()
	want := []string{ToolCompareScenarios, ToolCompoundInterest, ToolGrowthChart}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}
