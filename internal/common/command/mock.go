package command

import (
	"context"
	"strings"
)

// Call records one invocation of MockRunner
type Call struct {
	Name string
	Args []string
}

// String returns the command line of the call
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// MockRunner implements Runner for testing.
// RunFunc controls the behavior; every call is recorded in Calls.
type MockRunner struct {
	RunFunc func(name string, args ...string) (string, error)
	Calls   []Call
}

// NewMockRunner creates a MockRunner that answers by command line from outputs
func NewMockRunner(outputs map[string]string) *MockRunner {
	m := &MockRunner{}
	m.RunFunc = func(name string, args ...string) (string, error) {
		return outputs[Call{Name: name, Args: args}.String()], nil
	}
	return m
}

// Run records the call and delegates to RunFunc
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	m.Calls = append(m.Calls, Call{Name: name, Args: args})
	if m.RunFunc != nil {
		return m.RunFunc(name, args...)
	}
	return "", nil
}

// Ensure MockRunner implements Runner interface
var _ Runner = (*MockRunner)(nil)
