package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestResult(t *testing.T) {
	if got := Result(true); got != ResultOK {
		t.Errorf("Result(true) = %s, want %s", got, ResultOK)
	}
	if got := Result(false); got != ResultFailed {
		t.Errorf("Result(false) = %s, want %s", got, ResultFailed)
	}
}

func TestHandlerServesShaderMetrics(t *testing.T) {
	ShaderReloads.WithLabelValues(ResultOK).Inc()
	before := testutil.ToFloat64(FramesRendered)
	FramesRendered.Inc()
	if got := testutil.ToFloat64(FramesRendered); got != before+1 {
		t.Errorf("expected frame counter to advance by one, got %v -> %v", before, got)
	}

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, name := range []string{
		"learngl_frames_rendered_total",
		"learngl_shader_reloads_total",
		"learngl_shader_programs_live",
	} {
		if !strings.Contains(string(body), name) {
			t.Errorf("expected %s in metrics output", name)
		}
	}
}
