package admission

import (
	"net/http"

	"github.com/statuspad/statuspad"
)

// Rejection is the terminal outcome of a failed admission stage. It carries
// everything the transport layer needs to write the response.
type Rejection struct {
	Status     int
	Code       string
	Message    string
	RetryAfter int // seconds; zero when not applicable
}

// State carries per-request values produced by earlier stages for later
// ones. It lives for a single request only.
type State struct {
	// ClientKey is the rate-limit identity, set by the rate-limit stage.
	ClientKey string
	// Identity is set by the authenticator when the credential check
	// passes; read by the authorizer and by handlers.
	Identity *statuspad.Identity
}

// Stage checks one admission rule. A nil return continues the chain; a
// non-nil Rejection terminates it.
type Stage interface {
	Check(r *http.Request, st *State) *Rejection
}

// StageFunc adapts a function to the Stage interface.
type StageFunc func(r *http.Request, st *State) *Rejection

func (f StageFunc) Check(r *http.Request, st *State) *Rejection { return f(r, st) }

// Pipeline is an ordered list of stages. It holds no state of its own; it is
// pure orchestration.
type Pipeline struct {
	stages []Stage
}

// NewPipeline creates a pipeline running the given stages in order.
func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Admit folds over the stages in declared order and returns the first
// Rejection, or nil when every stage passes. No stage is skipped or
// reordered, and no stage after a rejection runs.
func (p *Pipeline) Admit(r *http.Request, st *State) *Rejection {
	for _, s := range p.stages {
		if rej := s.Check(r, st); rej != nil {
			return rej
		}
	}
	return nil
}
