// Package mock provides an in-memory face encoder for testing the benchmark
// core without a live embedding service.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/kozaktomas/face-bench/internal/recognizer"
)

// Encoder is a mock implementation of the face-encoding collaborator.
// Encodings are registered per path; unregistered paths return ErrNoFaceFound
// like an image with no detectable face would.
type Encoder struct {
	mu        sync.Mutex
	encodings map[string][]float32
	calls     map[string]int

	// Error injection per path. Takes precedence over registered encodings.
	Errors map[string]error

	// Delay simulates per-image processing time. DelayFor overrides Delay
	// for individual paths so tests can skew worker load.
	Delay    time.Duration
	DelayFor map[string]time.Duration
}

// NewEncoder creates an empty mock encoder.
func NewEncoder() *Encoder {
	return &Encoder{
		encodings: make(map[string][]float32),
		calls:     make(map[string]int),
	}
}

// AddEncoding registers the encoding returned for a path.
func (m *Encoder) AddEncoding(path string, vec []float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.encodings[path] = vec
}

// Encode returns the registered encoding for the path, honoring injected
// errors and delays.
func (m *Encoder) Encode(ctx context.Context, path string) ([]float32, error) {
	m.mu.Lock()
	m.calls[path]++
	vec, ok := m.encodings[path]
	err := m.Errors[path]
	delay := m.Delay
	if d, found := m.DelayFor[path]; found {
		delay = d
	}
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, recognizer.ErrNoFaceFound
	}
	return vec, nil
}

// Calls returns how many times a path was encoded.
func (m *Encoder) Calls(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[path]
}

// TotalCalls returns the total number of Encode invocations.
func (m *Encoder) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}
