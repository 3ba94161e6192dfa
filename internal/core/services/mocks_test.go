package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/custodia-labs/aikcal/internal/core/domain"
	"github.com/custodia-labs/aikcal/internal/core/ports/driven"
)

// mockPromptStore renders prompts as "name|arg|arg" so tests can script
// oracle answers by prompt.
type mockPromptStore struct{}

func (mockPromptStore) Load(name string) (string, error) {
	switch name {
	case driven.PromptPhotoParse:
		return name, nil
	case driven.PromptLearnProduct:
		return name + "|%s", nil
	case driven.PromptLearnAggregate, driven.PromptLearnDecomposition, driven.PromptWorkoutEstimate:
		return name + "|%s|%s", nil
	default:
		return "", fmt.Errorf("unknown prompt %q", name)
	}
}

func (mockPromptStore) Reload() {}

// mockOracle answers prompts from a script and records every call.
type mockOracle struct {
	mu      sync.Mutex
	answers map[string]string
	errs    map[string]error
	calls   []string
	images  int

	delay       time.Duration
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func newMockOracle() *mockOracle {
	return &mockOracle{answers: map[string]string{}, errs: map[string]error{}}
}

func (m *mockOracle) on(prompt, answer string) *mockOracle {
	m.answers[prompt] = answer
	return m
}

func (m *mockOracle) fail(prompt string, err error) *mockOracle {
	m.errs[prompt] = err
	return m
}

func (m *mockOracle) Infer(_ context.Context, prompt string, image *domain.Image) (string, error) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		peak := m.maxInFlight.Load()
		if n <= peak || m.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, prompt)
	if image != nil {
		m.images++
	}
	if err, ok := m.errs[prompt]; ok {
		return "", err
	}
	if answer, ok := m.answers[prompt]; ok {
		return answer, nil
	}
	return "", fmt.Errorf("%w: unscripted prompt %q", domain.ErrOracleUnavailable, prompt)
}

func (m *mockOracle) callsWithPrefix(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.calls {
		if strings.HasPrefix(c, prefix) {
			count++
		}
	}
	return count
}

func (m *mockOracle) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockOracle) ModelName() string            { return "mock" }
func (m *mockOracle) Ping(_ context.Context) error { return nil }
func (m *mockOracle) Close() error                 { return nil }
