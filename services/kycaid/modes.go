package kycaid

import (
	"sync"

	"github.com/kycflow/gateway/config"
	"github.com/kycflow/gateway/types"
)

// ModeStore holds the active credential mode. Handlers resolve the
// credential once at the start of a request; a concurrent mode change
// never affects a request already dispatched.
type ModeStore struct {
	mu   sync.RWMutex
	mode string
	conf *config.KycaidConfiguration
}

// NewModeStore builds a store starting in the configured default mode,
// falling back to test when the default is unrecognized.
func NewModeStore(conf *config.KycaidConfiguration) *ModeStore {
	mode := conf.DefaultMode
	if !types.IsValidMode(mode) {
		mode = types.ModeTest
	}
	return &ModeStore{mode: mode, conf: conf}
}

// Mode returns the active mode.
func (s *ModeStore) Mode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode switches the active mode. Requests already in flight keep the
// credential they resolved.
func (s *ModeStore) SetMode(mode string) error {
	if !types.IsValidMode(mode) {
		return ErrInvalidMode{Mode: mode}
	}
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	return nil
}

// APIKey returns the credential for the active mode.
func (s *ModeStore) APIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.mode == types.ModeProd {
		return s.conf.ProdAPIKey
	}
	return s.conf.TestAPIKey
}

// APIKeySet reports whether a credential is configured for the active
// mode, without revealing it.
func (s *ModeStore) APIKeySet() bool {
	return s.APIKey() != ""
}
