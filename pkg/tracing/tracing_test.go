package tracing

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func installRecorder(t *testing.T, ratio float64) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	prev := Tracer
	Install(NewProvider(ratio, sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { Tracer = prev })
	return rec
}

func TestGinMiddlewareSpans(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := installRecorder(t, 1)

	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/courses/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("store unavailable"))
		c.Status(http.StatusInternalServerError)
	})

	for _, path := range []string{"/courses/course_ml", "/boom", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	spans := rec.Ended()
	if len(spans) != 3 {
		t.Fatalf("ended spans = %d, want 3", len(spans))
	}
	want := []struct {
		name string
		code codes.Code
	}{
		{"GET /courses/:id", codes.Unset},
		{"GET /boom", codes.Error},
		{"GET unmatched", codes.Unset},
	}
	for i, w := range want {
		if spans[i].Name() != w.name || spans[i].Status().Code != w.code {
			t.Fatalf("span %d = %q/%v, want %q/%v", i, spans[i].Name(), spans[i].Status().Code, w.name, w.code)
		}
	}
	if len(spans[1].Events()) == 0 {
		t.Fatalf("expected recorded error event on failing span")
	}
}

func TestZeroRatioDropsRootSpans(t *testing.T) {
	rec := installRecorder(t, 0)
	_, span := Tracer.Start(t.Context(), "dropped")
	span.End()
	if n := len(rec.Ended()); n != 0 {
		t.Fatalf("ended spans = %d, want 0", n)
	}
}

func TestFailIgnoresNil(t *testing.T) {
	rec := installRecorder(t, 1)
	_, span := Tracer.Start(t.Context(), "ok")
	Fail(span, nil)
	span.End()
	if got := rec.Ended()[0].Status().Code; got != codes.Unset {
		t.Fatalf("status = %v, want unset", got)
	}
}
