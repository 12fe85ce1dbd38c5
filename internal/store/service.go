package store

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/heysubinoy/remotekv/pkg/kv"
)

// UnknownCaller is logged when the transport cannot name the remote peer.
const UnknownCaller = "unknown"

// Service is the single owner of the key-value mapping. Every front end
// (gRPC, HTTP) goes through it so that each call is attributed to a caller
// and logged. The store's lock is released before any log line is written.
type Service struct {
	store  kv.Store
	logger hclog.Logger
}

// NewService creates a Service around store. A nil logger discards output.
func NewService(store kv.Store, logger hclog.Logger) *Service {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{
		store:  store,
		logger: logger,
	}
}

// Put upserts value under key.
func (s *Service) Put(caller, key, value string) error {
	err := s.store.Put(key, value)

	s.logger.Info("PUT request received", "key", key, "value", value, "client", callerOrUnknown(caller))
	if err != nil {
		s.logger.Error("PUT response sent", "result", "failure", "error", err)
		return fmt.Errorf("put %q: %w", key, err)
	}
	s.logger.Info("PUT response sent", "result", "success")
	return nil
}

// Get returns the value stored under key and whether it exists.
func (s *Service) Get(caller, key string) (string, bool) {
	value, found := s.store.Get(key)

	s.logger.Info("GET request received", "key", key, "client", callerOrUnknown(caller))
	if found {
		s.logger.Info("GET response sent", "value", value)
	} else {
		s.logger.Info("GET response sent", "result", "key not found")
	}
	return value, found
}

// Delete removes key and reports whether it was present.
func (s *Service) Delete(caller, key string) (bool, error) {
	removed, err := s.store.Delete(key)

	s.logger.Info("DELETE request received", "key", key, "client", callerOrUnknown(caller))
	switch {
	case err != nil:
		s.logger.Error("DELETE response sent", "result", "failure", "error", err)
		return false, fmt.Errorf("delete %q: %w", key, err)
	case removed:
		s.logger.Info("DELETE response sent", "result", "success")
	default:
		s.logger.Info("DELETE response sent", "result", "key not found")
	}
	return removed, nil
}

func callerOrUnknown(caller string) string {
	if caller == "" {
		return UnknownCaller
	}
	return caller
}
