// Package bootstrap runs the five-stage machine provisioning sequence:
// toolchain, packages, app store, dotfiles, shell. Stages run in fixed
// order, each one is idempotent, and the first unrecoverable failure
// aborts the rest.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/dotup/pkg/errors"
	"github.com/arthur-debert/dotup/pkg/logging"
)

// Stage is one step of the bootstrap sequence
type Stage interface {
	// Name is the stable identifier used by --skip-stage and reports
	Name() string

	// Check reports whether the stage's work is already satisfied,
	// without mutating anything
	Check(ctx context.Context) (bool, error)

	// Run performs the stage's work. Must be safe to re-run.
	Run(ctx context.Context) error
}

// StageError names the stage that was executing when a failure occurred
type StageError struct {
	Stage string
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %q failed: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// Sequencer executes stages in order with a fail-fast policy
type Sequencer struct {
	stages []Stage
	skip   map[string]bool
	logger zerolog.Logger

	// OnStageStart, when set, is called before each executed stage;
	// the CLI uses it for progress output
	OnStageStart func(name string)
}

// NewSequencer creates a Sequencer over the given stages
func NewSequencer(stages ...Stage) *Sequencer {
	return &Sequencer{
		stages: stages,
		skip:   make(map[string]bool),
		logger: logging.GetLogger("bootstrap.sequencer"),
	}
}

// StageNames returns the stage names in execution order
func (s *Sequencer) StageNames() []string {
	names := make([]string, len(s.stages))
	for i, st := range s.stages {
		names[i] = st.Name()
	}
	return names
}

// Skip marks stages to be skipped. Unknown names are rejected rather
// than silently ignored.
func (s *Sequencer) Skip(names ...string) error {
	known := make(map[string]bool, len(s.stages))
	for _, st := range s.stages {
		known[st.Name()] = true
	}
	for _, name := range names {
		if !known[name] {
			return errors.Newf(errors.ErrStageUnknown, "unknown stage %q (known: %v)", name, s.StageNames())
		}
		s.skip[name] = true
	}
	return nil
}

// Run executes the sequence. On the first failure the remaining stages
// are recorded as not run and a StageError is returned alongside the
// partial report.
func (s *Sequencer) Run(ctx context.Context) (*Report, error) {
	report := &Report{Started: time.Now()}

	for i, stage := range s.stages {
		name := stage.Name()

		if s.skip[name] {
			s.logger.Info().Str("stage", name).Msg("Stage skipped by request")
			report.add(StageResult{Stage: name, Status: StatusSkipped})
			continue
		}

		if s.OnStageStart != nil {
			s.OnStageStart(name)
		}

		s.logger.Info().Str("stage", name).Msg("Stage started")
		start := time.Now()
		err := stage.Run(ctx)
		elapsed := time.Since(start)

		if err != nil {
			s.logger.Error().Err(err).Str("stage", name).Msg("Stage failed")
			report.add(StageResult{Stage: name, Status: StatusFailed, Err: err, Duration: elapsed})

			for _, rest := range s.stages[i+1:] {
				report.add(StageResult{Stage: rest.Name(), Status: StatusNotRun})
			}
			return report, &StageError{Stage: name, Cause: err}
		}

		s.logger.Info().Str("stage", name).Dur("duration", elapsed).Msg("Stage completed")
		report.add(StageResult{Stage: name, Status: StatusSuccess, Duration: elapsed})
	}

	return report, nil
}
