package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/cloud-ru/compound-interest-go/internal/logging"
)

func TestInitTracingWithoutEndpoint(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "info", "text")

	provider, err := InitTracing(context.Background(), "compound-interest-test", "", logger)
	if err != nil {
		t.Fatalf("InitTracing() error = %v", err)
	}
	if provider.Tracer == nil {
		t.Fatal("tracer is nil")
	}

	_, span := provider.Tracer.Start(context.Background(), "compound_interest")
	if !span.SpanContext().IsValid() {
		t.Error("expected a recording span with a valid context")
	}
	span.End()

	if err := provider.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("without exporter")) {
		t.Errorf("expected startup log line, got %q", buf.String())
	}
}

func TestNilProviderShutdown(t *testing.T) {
	var p Provider
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
