// Package model provides the building blocks shared by caloriedash's models:
//
//   - StateManager: fitted-state tracking for estimators
//   - scikit-learn interoperability: read and write the JSON artifact a
//     Python training pipeline exports
//
// Models hold a *StateManager instead of embedding a base type so the state
// can be serialized alongside the parameters.
package model

import "sync"

// EstimatorState represents whether a model has parameters.
type EstimatorState int

const (
	// NotFitted indicates the model has no parameters yet.
	NotFitted EstimatorState = iota
	// Fitted indicates the model was trained or loaded from an artifact.
	Fitted
)

func (s EstimatorState) String() string {
	if s == Fitted {
		return "fitted"
	}
	return "not_fitted"
}

// StateManager tracks a model's fitted state and input dimensions.
type StateManager struct {
	mu        sync.RWMutex
	State     EstimatorState
	NFeatures int
	NSamples  int
}

// NewStateManager returns a manager in the NotFitted state.
func NewStateManager() *StateManager {
	return &StateManager{State: NotFitted}
}

// IsFitted reports whether the model can be used for prediction.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.State == Fitted
}

// SetFitted marks the model as ready for prediction.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = Fitted
}

// SetDimensions records the number of input features and, when known, the
// number of training samples. Artifacts loaded from disk report 0 samples.
func (s *StateManager) SetDimensions(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NFeatures = nFeatures
	s.NSamples = nSamples
}

// Dimensions returns the recorded feature and sample counts.
func (s *StateManager) Dimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NFeatures, s.NSamples
}

// Reset returns the manager to the NotFitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.State = NotFitted
	s.NFeatures = 0
	s.NSamples = 0
}
