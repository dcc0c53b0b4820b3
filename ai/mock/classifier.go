package mock

import (
	"context"
	"sync"

	"github.com/poiesic/mailsift/core"
)

// MockClassifier is a test double for ai.Classifier.
// It allows custom behavior injection via function fields.
type MockClassifier struct {
	// ClassifyEmailFunc is called by ClassifyEmail if set.
	// If nil, uses default fixed behavior.
	ClassifyEmailFunc func(ctx context.Context, text string) (*core.ClassificationResult, error)

	mu          sync.Mutex
	assistantID string
	callCount   int
}

// NewMockClassifier creates a mock classifier with default fixed behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{assistantID: "asst_mock"}
}

// ClassifyEmail returns a fixed single-intent classification unless a custom
// function is injected.
func (m *MockClassifier) ClassifyEmail(ctx context.Context, text string) (*core.ClassificationResult, error) {
	m.mu.Lock()
	m.callCount++
	m.mu.Unlock()

	if m.ClassifyEmailFunc != nil {
		return m.ClassifyEmailFunc(ctx, text)
	}

	return &core.ClassificationResult{
		RequestIntents: []core.RequestIntent{
			{
				Intent:          "General Inquiry",
				Reasoning:       "mock classification",
				ConfidenceScore: 0.5,
			},
		},
		SubRequests: []core.SubRequest{},
	}, nil
}

// SetAssistantID records the assistant identity for later assertions.
func (m *MockClassifier) SetAssistantID(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assistantID = id
}

// AssistantID returns the most recently set assistant identity.
func (m *MockClassifier) AssistantID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assistantID
}

// CallCount returns the number of times ClassifyEmail was called.
func (m *MockClassifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockClassifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.ClassifyEmailFunc = nil
}
