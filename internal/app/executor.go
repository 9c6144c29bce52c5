package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/askkodiak-gateway/internal/platform/logging"
)

// Multi-call use cases run in four stages:
//
//	validate  reject bad input before any upstream call
//	perform   make the upstream calls
//	verify    check the answers actually cover what was asked
//	respond   shape the verified answers for the caller
//
// A failure is reported as a *StageError naming the stage, so a caller can
// tell "you asked for something invalid" from "the upstream misbehaved".

// Stage names a step of an Operation.
type Stage string

const (
	StageValidate Stage = "validate"
	StagePerform  Stage = "perform"
	StageVerify   Stage = "verify"
	StageRespond  Stage = "respond"
)

// StageError records which stage of which operation failed.
type StageError struct {
	Operation string
	Stage     Stage
	Err       error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Operation, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage returns the stage that produced err, if any.
func FailedStage(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}

	return "", false
}

// Operation is a staged use case. I is the input, P what Perform gathered,
// O the response. Nil stages are skipped; a nil Respond returns the zero O.
type Operation[I, P, O any] struct {
	Name     string
	Validate func(ctx context.Context, in I) error
	Perform  func(ctx context.Context, in I) (P, error)
	Verify   func(ctx context.Context, in I, performed P) error
	Respond  func(ctx context.Context, in I, performed P) (O, error)
}

// Executor runs Operations with stage-level logging.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor returns an Executor. A nil logger uses slog.Default.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Execute runs op over in, stopping at the first failing stage.
func Execute[I, P, O any](ctx context.Context, exec *Executor, op Operation[I, P, O], in I) (O, error) {
	var zero O

	logger := logging.FromContextOr(ctx, exec.logger).With(slog.String("operation", op.Name))
	start := time.Now()

	fail := func(stage Stage, err error) (O, error) {
		level := slog.LevelError
		if stage == StageValidate {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "operation failed",
			slog.String("stage", string(stage)),
			slog.Any("error", err))

		return zero, &StageError{Operation: op.Name, Stage: stage, Err: err}
	}

	if op.Validate != nil {
		if err := op.Validate(ctx, in); err != nil {
			return fail(StageValidate, err)
		}
	}

	var performed P
	if op.Perform != nil {
		var err error
		if performed, err = op.Perform(ctx, in); err != nil {
			return fail(StagePerform, err)
		}
	}

	if op.Verify != nil {
		if err := op.Verify(ctx, in, performed); err != nil {
			return fail(StageVerify, err)
		}
	}

	out := zero
	if op.Respond != nil {
		var err error
		if out, err = op.Respond(ctx, in, performed); err != nil {
			return fail(StageRespond, err)
		}
	}

	logger.Log(ctx, logging.LevelTrace, "operation completed", slog.Duration("duration", time.Since(start)))

	return out, nil
}
