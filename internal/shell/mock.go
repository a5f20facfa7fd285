package shell

import (
	"context"
	"strings"
	"sync"
)

// MockResponse is the canned result of a mocked command.
type MockResponse struct {
	Stdout string
	Err    error
}

// MockCall records one invocation of MockRunner.Run.
type MockCall struct {
	WorkDir string
	Command string
	Args    []string
}

// Line renders the call as "command arg1 arg2".
func (c MockCall) Line() string {
	return strings.TrimSpace(c.Command + " " + strings.Join(c.Args, " "))
}

// MockRunner is a Runner that replays canned responses and records calls.
//
// Responses are matched by the full command line first, then by the command
// name alone, then by the wildcard registered with OnAnyCommand, and finally
// DefaultResponse is returned.
type MockRunner struct {
	mu              sync.Mutex
	Responses       map[string]MockResponse
	DefaultResponse MockResponse
	Calls           []MockCall
}

// NewMockRunner returns an empty MockRunner.
func NewMockRunner() *MockRunner {
	return &MockRunner{Responses: make(map[string]MockResponse)}
}

// MockExpectation binds a response to a command line.
type MockExpectation struct {
	runner *MockRunner
	key    string
}

// OnCommand starts an expectation for the exact command line.
func (m *MockRunner) OnCommand(name string, args ...string) *MockExpectation {
	return &MockExpectation{runner: m, key: strings.TrimSpace(name + " " + strings.Join(args, " "))}
}

// OnAnyCommand starts a wildcard expectation.
func (m *MockRunner) OnAnyCommand() *MockExpectation {
	return &MockExpectation{runner: m, key: "*"}
}

// Return sets the response for the expectation.
func (e *MockExpectation) Return(stdout string, err error) {
	e.runner.mu.Lock()
	defer e.runner.mu.Unlock()
	e.runner.Responses[e.key] = MockResponse{Stdout: stdout, Err: err}
}

func (m *MockRunner) Run(_ context.Context, dir, name string, args ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := MockCall{WorkDir: dir, Command: name, Args: append([]string(nil), args...)}
	m.Calls = append(m.Calls, call)

	for _, key := range []string{call.Line(), name, "*"} {
		if resp, ok := m.Responses[key]; ok {
			return resp.Stdout, resp.Err
		}
	}
	return m.DefaultResponse.Stdout, m.DefaultResponse.Err
}

// Lines returns every recorded call rendered with MockCall.Line.
func (m *MockRunner) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	lines := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		lines[i] = c.Line()
	}
	return lines
}

// WasCalled reports whether a call starting with name and args was recorded.
func (m *MockRunner) WasCalled(name string, args ...string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.Calls {
		if c.Command == name && hasPrefix(c.Args, args) {
			return true
		}
	}
	return false
}

// CallCount returns how many calls were made to name.
func (m *MockRunner) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.Calls {
		if c.Command == name {
			n++
		}
	}
	return n
}

func hasPrefix(actual, prefix []string) bool {
	if len(prefix) > len(actual) {
		return false
	}
	for i := range prefix {
		if actual[i] != prefix[i] {
			return false
		}
	}
	return true
}
