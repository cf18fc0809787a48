package httpapi

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/cloud-ru/compound-interest-go/internal/render"
	"github.com/cloud-ru/compound-interest-go/pkg/utils"
)

const (
	svgWidth   = 800
	svgHeight  = 320
	svgPadding = 20
)

var templateFuncs = template.FuncMap{
	"chartSVG":    chartSVG,
	"currentYear": func() int { return time.Now().Year() },
}

// svgChart polyline coordinates of both series
type svgChart struct {
	Width       int
	Height      int
	Invested    string
	Accumulated string
}

// chartSVG scales the chart series into the SVG viewport
func chartSVG(chart render.ChartData) svgChart {
	out := svgChart{Width: svgWidth, Height: svgHeight}
	if len(chart.Points) == 0 {
		return out
	}

	maxX := chart.Points[len(chart.Points)-1].Period
	maxY := 0.0
	for _, p := range chart.Points {
		// an overflowed series has nothing sensible to plot
		if !utils.IsFinite(p.Accumulated) || !utils.IsFinite(p.Invested) {
			return svgChart{Width: svgWidth, Height: svgHeight}
		}
		if p.Accumulated > maxY {
			maxY = p.Accumulated
		}
		if p.Invested > maxY {
			maxY = p.Invested
		}
	}

	x := func(period int) float64 {
		if maxX == 0 {
			return svgPadding
		}
		return svgPadding + float64(period)/float64(maxX)*(svgWidth-2*svgPadding)
	}
	y := func(v float64) float64 {
		if maxY == 0 {
			return svgHeight - svgPadding
		}
		return svgHeight - svgPadding - v/maxY*(svgHeight-2*svgPadding)
	}

	var invested, accumulated strings.Builder
	for i, p := range chart.Points {
		if i > 0 {
			invested.WriteByte(' ')
			accumulated.WriteByte(' ')
		}
		writePoint(&invested, x(p.Period), y(p.Invested))
		writePoint(&accumulated, x(p.Period), y(p.Accumulated))
	}
	out.Invested = invested.String()
	out.Accumulated = accumulated.String()
	return out
}

func writePoint(b *strings.Builder, x, y float64) {
	b.WriteString(strconv.FormatFloat(x, 'f', 1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(y, 'f', 1, 64))
}
