package pipeline

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrRequestConstruction is the sentinel behind every ConstructionError.
var ErrRequestConstruction = errors.New("request construction failed")

// Step mutates an outgoing request in place.
// Built-in steps never fail; a failing caller step stops the request from being sent.
type Step interface {
	Apply(req *http.Request) error
}

// StepFunc adapts a function to the Step interface.
type StepFunc func(req *http.Request) error

// Apply implements Step.
func (f StepFunc) Apply(req *http.Request) error {
	return f(req)
}

type namedStep struct {
	name string
	Step
}

// Named attaches a name to a step for error reporting and logs.
func Named(name string, step Step) Step {
	return namedStep{name: name, Step: step}
}

// stepName returns the name given with Named, or the step's type.
func stepName(step Step) string {
	if n, ok := step.(namedStep); ok {
		return n.name
	}

	switch step.(type) {
	case QueryEncoder:
		return "query-encoder"
	case EditionInjector:
		return "naics-edition"
	default:
		return fmt.Sprintf("%T", step)
	}
}

// ConstructionError reports a step failure. The request was not sent.
type ConstructionError struct {
	Step string
	Err  error
}

// Error implements the error interface.
func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%s: step %q: %v", ErrRequestConstruction, e.Step, e.Err)
}

// Unwrap supports errors.Is for both the sentinel and the cause.
func (e *ConstructionError) Unwrap() []error {
	return []error{ErrRequestConstruction, e.Err}
}

// IsConstructionError reports whether err came from a failed pipeline step.
func IsConstructionError(err error) bool {
	return errors.Is(err, ErrRequestConstruction)
}

// Config configures a Pipeline.
type Config struct {
	// Edition pins the NAICS edition. Empty disables injection.
	Edition string

	// Auth attaches credentials. Optional.
	Auth Step

	// Steps run after the built-in steps, in order.
	Steps []Step
}

// Pipeline is an ordered, immutable list of steps.
type Pipeline struct {
	steps []Step
}

// New builds a pipeline in the fixed order: query encoding, edition
// injection, auth, then caller steps.
func New(cfg Config) *Pipeline {
	steps := make([]Step, 0, len(cfg.Steps)+3)
	steps = append(steps, QueryEncoder{}, EditionInjector{Edition: cfg.Edition})

	if cfg.Auth != nil {
		steps = append(steps, cfg.Auth)
	}

	for _, s := range cfg.Steps {
		if s != nil {
			steps = append(steps, s)
		}
	}

	return &Pipeline{steps: steps}
}

// Apply runs every step over req. Mutations made before a failing step are
// kept; the caller must not send the request when an error is returned.
func (p *Pipeline) Apply(req *http.Request) error {
	if p == nil {
		return nil
	}

	for _, step := range p.steps {
		if err := step.Apply(req); err != nil {
			return &ConstructionError{Step: stepName(step), Err: err}
		}
	}

	return nil
}

// StepNames lists the steps in execution order.
func (p *Pipeline) StepNames() []string {
	if p == nil {
		return nil
	}

	names := make([]string, len(p.steps))
	for i, s := range p.steps {
		names[i] = stepName(s)
	}

	return names
}
