package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cloud-ru/compound-interest-go/internal/calculations"
	"github.com/cloud-ru/compound-interest-go/internal/form"
	"github.com/cloud-ru/compound-interest-go/internal/logging"
	"github.com/cloud-ru/compound-interest-go/internal/metrics"
	"github.com/cloud-ru/compound-interest-go/internal/render"
	"github.com/cloud-ru/compound-interest-go/internal/tools"
	"github.com/cloud-ru/compound-interest-go/internal/validators"
)

const maxBodyBytes = 1 << 16

// CalculateResponse body of POST /api/calculate
type CalculateResponse struct {
	Result   *calculations.CalculationResult `json:"result"`
	Headline render.Headline                 `json:"headline"`
	Growth   calculations.GrowthMetrics      `json:"growth"`
	Chart    render.ChartData                `json:"chart"`
}

// CompareRequest body of POST /api/compare
type CompareRequest struct {
	Base        calculations.CalculationRequest `json:"base"`
	Alternative calculations.CalculationRequest `json:"alternative"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, render.NewView(form.Defaults(), nil))
}

func (s *Server) handleCalculateForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form submission")
		return
	}

	f := form.FromValues(r.PostForm)
	req := f.Request()
	if err := validators.CheckHorizon(s.cfg, req); err != nil {
		metrics.CalculationErrors.WithLabelValues("form", "validation").Inc()
		view := render.NewView(f, nil)
		view.Error = fmt.Sprintf("O período máximo é de %d meses.", validators.MaxMonths(s.cfg))
		s.renderPage(w, r, http.StatusUnprocessableEntity, view)
		return
	}

	result := s.compute(r, "form", req)
	if err := validators.CheckResult(result); err != nil {
		metrics.CalculationErrors.WithLabelValues("form", "overflow").Inc()
		view := render.NewView(f, nil)
		view.Error = "O resultado ultrapassa o limite numérico. Reduza a taxa ou o período."
		s.renderPage(w, r, http.StatusUnprocessableEntity, view)
		return
	}
	s.renderPage(w, r, http.StatusOK, render.NewView(f, result))
}

// handleClear discards the current result and form state
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleCalculateAPI(w http.ResponseWriter, r *http.Request) {
	var req calculations.CalculationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		metrics.CalculationErrors.WithLabelValues("api", "decode").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req = validators.Sanitize(req)
	if err := validators.CheckHorizon(s.cfg, req); err != nil {
		metrics.CalculationErrors.WithLabelValues("api", "validation").Inc()
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	result := s.compute(r, "api", req)
	if err := validators.CheckResult(result); err != nil {
		metrics.CalculationErrors.WithLabelValues("api", "overflow").Inc()
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, CalculateResponse{
		Result:   result,
		Headline: render.NewHeadline(result),
		Growth:   calculations.Growth(result, req.Months()),
		Chart:    render.Chart(result),
	})
}

func (s *Server) handleCompareAPI(w http.ResponseWriter, r *http.Request) {
	var body CompareRequest
	if err := decodeJSON(w, r, &body); err != nil {
		metrics.CalculationErrors.WithLabelValues("api", "decode").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	base := validators.Sanitize(body.Base)
	alt := validators.Sanitize(body.Alternative)
	for _, req := range []calculations.CalculationRequest{base, alt} {
		if err := validators.CheckHorizon(s.cfg, req); err != nil {
			metrics.CalculationErrors.WithLabelValues("api", "validation").Inc()
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	cmp := calculations.CompareScenarios(base, alt)
	for _, result := range []*calculations.CalculationResult{&cmp.Base, &cmp.Alternative} {
		if err := validators.CheckResult(result); err != nil {
			metrics.CalculationErrors.WithLabelValues("api", "overflow").Inc()
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	}

	observe("api_compare", base)
	observe("api_compare", alt)
	writeJSON(w, http.StatusOK, cmp)
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"tools": s.tools.Names()})
}

func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	var params map[string]interface{}
	if err := decodeJSON(w, r, &params); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := s.tools.Call(r.Context(), r.PathValue("name"), params)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, out)
	case errors.Is(err, tools.ErrUnknownTool):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, validators.ErrOutOfRange), errors.Is(err, validators.ErrNotFinite):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, tools.ErrInvalidParams):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "tool call failed", logging.FieldError, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) compute(r *http.Request, surface string, req calculations.CalculationRequest) *calculations.CalculationResult {
	result := calculations.Compute(req)
	observe(surface, req)
	logging.FromContext(r.Context()).DebugContext(r.Context(), "calculation finished",
		logging.FieldMonths, req.Months(),
		"final_value", result.FinalValue)
	return result
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, view render.View) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, "index.html", view); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "template render failed", logging.FieldError, err)
	}
}

func observe(surface string, req calculations.CalculationRequest) {
	metrics.ObserveCalculation(surface, string(req.InterestRatePeriod), string(req.PeriodUnit), req.Months())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// writeJSON encodes before writing the header so an encoding failure
// still reaches the client as a 500 with a body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		metrics.CalculationErrors.WithLabelValues("http", "encode").Inc()
		buf.Reset()
		buf.WriteString(`{"error":"response could not be encoded"}` + "\n")
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
