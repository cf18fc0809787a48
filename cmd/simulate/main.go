package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cloud-ru/compound-interest-go/internal/calculations"
	"github.com/cloud-ru/compound-interest-go/internal/form"
	"github.com/cloud-ru/compound-interest-go/internal/render"
	"github.com/cloud-ru/compound-interest-go/internal/validators"
	"github.com/cloud-ru/compound-interest-go/pkg/utils"
)

type options struct {
	initial    string
	monthly    string
	rate       string
	ratePeriod string
	period     string
	unit       string
	table      bool
	asJSON     bool
}

func main() {
	var opts options
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	fs.StringVar(&opts.initial, "initial", "0", "Initial amount, e.g. 1000 or 1000.50")
	fs.StringVar(&opts.monthly, "monthly", "0", "Monthly contribution")
	fs.StringVar(&opts.rate, "rate", "8", "Interest rate in percent")
	fs.StringVar(&opts.ratePeriod, "rate-period", "annual", "Rate period: annual or monthly")
	fs.StringVar(&opts.period, "period", "10", "Duration")
	fs.StringVar(&opts.unit, "unit", "years", "Duration unit: years or months")
	fs.BoolVar(&opts.table, "table", false, "Print the month-by-month table")
	fs.BoolVar(&opts.asJSON, "json", false, "Print the full result as JSON")
	_ = fs.Parse(os.Args[1:])

	if err := run(os.Stdout, opts); err != nil {
		fmt.Fprintf(os.Stderr, "simulate: %v\n", err)
		os.Exit(1)
	}
}

// formData reads CLI amounts as plain decimals rather than masked cents
func formData(opts options) form.FormData {
	return form.FormData{
		InitialValue:       form.ParseNumber(opts.initial),
		MonthlyValue:       form.ParseNumber(opts.monthly),
		InterestRate:       form.ParseNumber(opts.rate),
		InterestRatePeriod: form.ParseRatePeriod(opts.ratePeriod),
		Period:             form.ParseNumber(opts.period),
		PeriodUnit:         form.ParsePeriodUnit(opts.unit),
	}
}

func run(w io.Writer, opts options) error {
	req := formData(opts).Request()
	// the CLI has no config, so the default horizon limit applies
	if err := validators.CheckHorizon(nil, req); err != nil {
		return err
	}
	result := calculations.Compute(req)
	if err := validators.CheckResult(result); err != nil {
		return err
	}

	if opts.asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	h := render.NewHeadline(result)
	growth := calculations.Growth(result, req.Months())
	fmt.Fprintf(w, "%s: %s\n", h.FinalValue.Label, h.FinalValue.Formatted)
	fmt.Fprintf(w, "%s: %s\n", h.TotalInvested.Label, h.TotalInvested.Formatted)
	fmt.Fprintf(w, "%s: %s\n", h.TotalInterest.Label, h.TotalInterest.Formatted)
	fmt.Fprintf(w, "ROI: %s%%\n", utils.FormatAmount(growth.ROIPercent))

	if !opts.table {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "\nMonth\tInterest\tInvested\tTotal interest\tAccumulated\t")
	for _, row := range render.Table(result) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n",
			row.Month, row.Interest, row.TotalInvested, row.TotalInterest, row.AccumulatedValue)
	}
	return tw.Flush()
}
