package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloud-ru/compound-interest-go/internal/calculations"
	"github.com/cloud-ru/compound-interest-go/internal/validators"
)

func TestRunHeadline(t *testing.T) {
	var buf bytes.Buffer
	err := run(&buf, options{
		initial: "0", monthly: "50", rate: "0", ratePeriod: "monthly", period: "3", unit: "months",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Final value: R$ 150,00")
	assert.Contains(t, out, "Total interest: R$ 0,00")
	assert.NotContains(t, out, "Month")
}

func TestRunTable(t *testing.T) {
	var buf bytes.Buffer
	err := run(&buf, options{
		initial: "1000", monthly: "100", rate: "12", ratePeriod: "annual", period: "1", unit: "years", table: true,
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// 4 headline lines, blank, header, 13 rows
	assert.Len(t, lines, 19)
	assert.Contains(t, buf.String(), "R$ 2.200,00")
}

func TestRunJSON(t *testing.T) {
	var buf bytes.Buffer
	err := run(&buf, options{
		initial: "-5", monthly: "10", rate: "1", ratePeriod: "monthly", period: "2", unit: "months", asJSON: true,
	})
	require.NoError(t, err)

	var result calculations.CalculationResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Len(t, result.MonthlyData, 3)
	assert.Equal(t, 0.0, result.MonthlyData[0].TotalInvested)
	assert.Equal(t, 20.0, result.TotalInvested)
}

func TestRunRejectsHugePeriod(t *testing.T) {
	for _, period := range []string{"1000000000000000000", "1e30", "101"} {
		var buf bytes.Buffer
		err := run(&buf, options{
			initial: "1000", monthly: "100", rate: "8", ratePeriod: "annual", period: period, unit: "years",
		})
		assert.ErrorIs(t, err, validators.ErrOutOfRange, period)
		assert.Empty(t, buf.String())
	}
}

func TestRunRejectsOverflow(t *testing.T) {
	var buf bytes.Buffer
	err := run(&buf, options{
		initial: "1000", monthly: "0", rate: "10000", ratePeriod: "monthly", period: "100", unit: "years",
	})
	assert.ErrorIs(t, err, validators.ErrNotFinite)
	assert.Empty(t, buf.String())
}

func TestRunFractionalYears(t *testing.T) {
	var buf bytes.Buffer
	err := run(&buf, options{
		initial: "0", monthly: "10", rate: "0", ratePeriod: "annual", period: "1.5", unit: "years", asJSON: true,
	})
	require.NoError(t, err)

	var result calculations.CalculationResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Len(t, result.MonthlyData, 19)
	assert.Equal(t, 180.0, result.TotalInvested)
}
