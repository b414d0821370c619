// Package testutil provides testing utilities
package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/arthur-debert/dotup/pkg/host"
)

// FakeResponse scripts the outcome of a fake command invocation
type FakeResponse struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
}

// FakeRunner is a host.Runner that records every invocation and replies
// from a scripted table, so sequencer logic can be tested without a
// real machine
type FakeRunner struct {
	mu        sync.Mutex
	calls     []string
	responses map[string]FakeResponse
	missing   map[string]bool
}

var _ host.Runner = (*FakeRunner)(nil)

// NewFakeRunner creates a FakeRunner with no scripted responses;
// unscripted commands succeed with empty output
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		responses: make(map[string]FakeResponse),
		missing:   make(map[string]bool),
	}
}

// Respond scripts the response for an exact command line, e.g.
// "brew install wget"
func (f *FakeRunner) Respond(commandLine string, resp FakeResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[commandLine] = resp
}

// MarkMissing makes LookPath fail for the given tool
func (f *FakeRunner) MarkMissing(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.missing[name] = true
}

// Calls returns every recorded command line in invocation order
func (f *FakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Called reports whether an exact command line was invoked
func (f *FakeRunner) Called(commandLine string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == commandLine {
			return true
		}
	}
	return false
}

// LookPath implements host.Runner
func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missing[name] {
		return "", &missingToolError{name: name}
	}
	return "/usr/bin/" + name, nil
}

// Run implements host.Runner
func (f *FakeRunner) Run(ctx context.Context, name string, args ...string) (host.Result, error) {
	line := commandLine(name, args)

	f.mu.Lock()
	f.calls = append(f.calls, line)
	resp, ok := f.responses[line]
	f.mu.Unlock()

	if !ok {
		return host.Result{}, nil
	}
	return host.Result{
		Stdout:   resp.Stdout,
		Stderr:   resp.Stderr,
		ExitCode: resp.ExitCode,
	}, resp.Err
}

// RunInteractive implements host.Runner
func (f *FakeRunner) RunInteractive(ctx context.Context, name string, args ...string) error {
	line := commandLine(name, args)

	f.mu.Lock()
	f.calls = append(f.calls, line)
	resp := f.responses[line]
	f.mu.Unlock()

	return resp.Err
}

func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

type missingToolError struct {
	name string
}

func (e *missingToolError) Error() string {
	return e.name + ": executable file not found in $PATH"
}
