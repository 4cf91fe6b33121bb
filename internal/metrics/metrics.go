// Package metrics exposes Prometheus counters for shader builds and frames.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ShaderCompiles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learngl_shader_compiles_total",
		Help: "Shader stage compilations by stage and result",
	}, []string{"stage", "result"})
	ProgramLinks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learngl_shader_links_total",
		Help: "Shader program links by result",
	}, []string{"result"})
	ProgramsLive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "learngl_shader_programs_live",
		Help: "Program objects currently allocated on the GPU",
	})
	ShaderReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "learngl_shader_reloads_total",
		Help: "Hot reloads of shader programs by result",
	}, []string{"result"})
	FramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "learngl_frames_rendered_total",
		Help: "Total number of frames presented",
	})
)

// Result label values.
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// Result maps a success flag to a result label value.
func Result(ok bool) string {
	if ok {
		return ResultOK
	}
	return ResultFailed
}

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
