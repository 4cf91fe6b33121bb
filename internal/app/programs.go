package app

import (
	"errors"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/learngl/internal/engine/shader"
	"github.com/Faultbox/learngl/internal/logger"
	"github.com/Faultbox/learngl/internal/metrics"
)

// loader builds programs either from a directory on disk or from an fs.FS.
type loader struct {
	backend shader.Backend
	dir     string
	fsys    fs.FS
	opts    []shader.Option
}

func (l *loader) build(vertex, fragment string) (*shader.Program, error) {
	if l.dir == "" {
		return shader.NewFS(l.backend, l.fsys, vertex, fragment, l.opts...)
	}
	return shader.New(l.backend, l.path(vertex), l.path(fragment), l.opts...)
}

// path returns the on-disk path of a shader, or "" for embedded sources.
func (l *loader) path(name string) string {
	if l.dir == "" {
		return ""
	}
	return filepath.Join(l.dir, name)
}

// slot holds the live program for one vertex/fragment pair and replaces it
// when the sources change.
type slot struct {
	vertex, fragment string
	program          *shader.Program
	// configure sets uniforms that stay constant for the program's lifetime.
	configure func(*shader.Program)
}

// programSet owns every program a scene uses.
type programSet struct {
	loader *loader
	slots  []*slot
	log    *zap.Logger
}

func newProgramSet(l *loader) *programSet {
	return &programSet{loader: l, log: logger.Named("programs")}
}

// add builds a program. A broken program is kept so the frame loop keeps
// running; the error is returned for the caller to report.
func (s *programSet) add(vertex, fragment string, configure func(*shader.Program)) (*slot, error) {
	p, err := s.loader.build(vertex, fragment)
	sl := &slot{vertex: vertex, fragment: fragment, program: p, configure: configure}
	s.slots = append(s.slots, sl)
	if err != nil {
		s.log.Error("shader program unusable",
			zap.String("vertex", vertex),
			zap.String("fragment", fragment),
			zap.Error(err),
		)
		return sl, err
	}
	sl.apply()
	return sl, nil
}

func (sl *slot) apply() {
	if sl.configure != nil && sl.program.IsReady() {
		sl.program.Use()
		sl.configure(sl.program)
	}
}

// files returns the on-disk paths of all shader sources in use.
func (s *programSet) files() []string {
	seen := make(map[string]bool)
	var out []string
	for _, sl := range s.slots {
		for _, name := range []string{sl.vertex, sl.fragment} {
			if p := s.loader.path(name); p != "" && !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// reload rebuilds the programs that use any of the changed paths, or all of
// them when changed is nil. A rebuild that fails is discarded and the old
// program stays in place, unless the old one was broken too.
func (s *programSet) reload(changed []string) error {
	dirty := make(map[string]bool, len(changed))
	for _, p := range changed {
		dirty[p] = true
	}

	var errs []error
	for _, sl := range s.slots {
		if changed != nil && !dirty[s.loader.path(sl.vertex)] && !dirty[s.loader.path(sl.fragment)] {
			continue
		}

		next, err := s.loader.build(sl.vertex, sl.fragment)
		metrics.ShaderReloads.WithLabelValues(metrics.Result(err == nil)).Inc()
		if err != nil {
			errs = append(errs, err)
			if sl.program.IsReady() {
				s.log.Warn("reload failed, keeping previous program",
					zap.String("vertex", sl.vertex),
					zap.String("fragment", sl.fragment),
					zap.Error(err),
				)
				next.Delete()
				continue
			}
		}

		sl.program.Delete()
		sl.program = next
		sl.apply()
		if err == nil {
			s.log.Info("shader program reloaded",
				zap.String("vertex", sl.vertex),
				zap.String("fragment", sl.fragment),
				zap.Uint32("program", next.ID()),
			)
		}
	}
	return errors.Join(errs...)
}

// close deletes every program.
func (s *programSet) close() {
	for _, sl := range s.slots {
		sl.program.Delete()
	}
	s.slots = nil
}
