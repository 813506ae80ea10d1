package mocks

import (
	"fmt"
	"sync"

	"github.com/mcoot/tilepath/internal/dependencies/ids"
)

// MockIDs is a mock implementation of ids.Generator for testing
type MockIDs struct {
	mu sync.Mutex

	// Queue holds IDs to hand out before falling back to a counter
	Queue []string
	index int
	next  int
}

// Ensure MockIDs implements Generator
var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates a new MockIDs
func NewMockIDs() *MockIDs {
	return &MockIDs{}
}

// NewID returns the next queued ID, or a counter-based ObjectID-shaped
// hex string if the queue is empty
func (m *MockIDs) NewID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.index < len(m.Queue) {
		id := m.Queue[m.index]
		m.index++
		return id
	}
	m.next++
	return fmt.Sprintf("%024x", m.next)
}

// QueueIDs adds values to the ID queue
func (m *MockIDs) QueueIDs(values ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queue = append(m.Queue, values...)
}
