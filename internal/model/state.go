package model

import (
	"errors"
	"sync/atomic"
)

var errAlreadySet = errors.New("model state already initialized")

// State holds the artifact pair shared by every handler. It starts empty and
// transitions to loaded exactly once; readers never see half a pair.
type State struct {
	tenant string
	pair   atomic.Pointer[Pair]
}

// NewState creates an empty State for tenant.
func NewState(tenant string) *State {
	return &State{tenant: tenant}
}

// Tenant returns the tenant name reported in every response.
func (s *State) Tenant() string {
	return s.tenant
}

// Pair returns the loaded pair, or nil before bootstrap completes.
func (s *State) Pair() *Pair {
	return s.pair.Load()
}

// Loaded reports whether a pair has been published.
func (s *State) Loaded() bool {
	return s.pair.Load() != nil
}

func (s *State) set(p *Pair) error {
	if p == nil || p.Vectorizer == nil || p.Classifier == nil {
		return errors.New("incomplete artifact pair")
	}
	if !s.pair.CompareAndSwap(nil, p) {
		return errAlreadySet
	}
	return nil
}
