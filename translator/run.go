package translator

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/nav-translator/condor"
	"github.com/a-bouts/nav-translator/profile"
	"github.com/a-bouts/nav-translator/projection"
	"github.com/a-bouts/nav-translator/table"
)

// Result is the outcome of one target.
type Result struct {
	Target   string   `json:"target"`
	Files    []string `json:"files"`
	Warnings []string `json:"warnings"`
	// Changed lists the profile keys the run modified.
	Changed []string `json:"changed"`
	Error   string   `json:"error,omitempty"`
}

func (r Result) Failed() bool {
	return r.Error != ""
}

// Run translates the configured flight plan for every target. Errors that
// concern a single target are reported in its Result; the returned error is
// for failures shared by all targets.
func Run(cfg *Config, flightPlan string, sink Sink, logger log.FieldLogger) ([]Result, error) {
	if flightPlan == "" {
		flightPlan = cfg.FlightPlan
	}
	l := logger.WithField("flightplan", flightPlan)
	start := time.Now()

	plan, err := readPlan(sink, flightPlan)
	if err != nil {
		return nil, err
	}
	sceneries, err := readTable(sink, cfg.Sceneries)
	if err != nil {
		return nil, err
	}
	gliders, err := readTable(sink, cfg.Gliders)
	if err != nil {
		return nil, err
	}
	l.Debugf("%d sceneries, %d gliders", sceneries.Len(), gliders.Len())
	proj, err := projection.Bind(plan.Task.Landscape, sceneries)
	if err != nil {
		return nil, err
	}
	conv, err := projection.NewConverter(proj)
	if err != nil {
		return nil, err
	}

	var results []Result
	for _, target := range cfg.Targets {
		r := Result{Target: target.Name}

		prof, err := readProfile(sink, target.ProfilePath(), target.Kind.dialect())
		if err != nil {
			r.Error = err.Error()
			l.WithField("target", target.Name).Error(err)
			results = append(results, r)
			continue
		}

		t := &Translator{
			Target:    target,
			Plan:      plan,
			Converter: conv,
			Sceneries: sceneries,
			Gliders:   gliders,
			Profile:   prof,
			Sink:      sink,
			Options:   cfg.Options,
			Log:       l,
		}
		if err := t.Translate(); err != nil {
			r.Error = err.Error()
			l.WithField("target", target.Name).Errorf("Translation failed: %v", err)
		}
		r.Files = t.Files()
		r.Warnings = t.Warnings()
		r.Changed = t.Profile.Changed()
		results = append(results, r)
	}

	l.Infof("Translation took %s", time.Since(start).String())
	return results, nil
}

func readPlan(sink Sink, path string) (*condor.FlightPlan, error) {
	data, err := sink.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", condor.ErrInput, err)
	}
	plan, err := condor.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return plan, nil
}

func readTable(sink Sink, path string) (*table.Table, error) {
	data, err := sink.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", condor.ErrInput, err)
	}
	t, err := table.Read(path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", condor.ErrInput, err)
	}
	return t, nil
}

// readProfile gives an empty profile when the program has none yet.
func readProfile(sink Sink, path string, dialect profile.Dialect) (*profile.Profile, error) {
	data, err := sink.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return profile.New(dialect), nil
	} else if err != nil {
		return nil, fmt.Errorf("%w: profile %s: %v", ErrIO, path, err)
	}
	return profile.Read(bytes.NewReader(data), dialect)
}

// Runner serializes runs so a single run owns the output files at a time.
type Runner struct {
	Config *Config
	Sink   Sink
	Log    log.FieldLogger

	mu sync.Mutex
}

func (r *Runner) Translate(flightPlan string) ([]Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger := r.Log
	if logger == nil {
		logger = log.StandardLogger()
	}
	return Run(r.Config, flightPlan, r.Sink, logger)
}
