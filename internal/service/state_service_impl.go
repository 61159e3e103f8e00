package service

import (
	"context"
	"encoding/json"

	"github.com/andresvaldez/despacho/internal/repository"
	"go.uber.org/zap"
)

// stateService stores JSON snapshots of screen state in the kv store.
// Malformed stored JSON is treated as absent, never as an error: stale
// data must degrade to "no saved state".
type stateService struct {
	state repository.StateRepo
	log   *zap.Logger
}

func NewStateService(state repository.StateRepo, log *zap.Logger) StateService {
	if log == nil {
		log = zap.NewNop()
	}
	return &stateService{state: state, log: log}
}

// Load reads and unmarshals the snapshot under key into out.
// Returns false when the key is absent, unreadable, or holds invalid JSON.
func (s *stateService) Load(ctx context.Context, key string, out any) bool {
	raw, err := s.state.Get(ctx, key)
	if err != nil {
		s.log.Error("reading saved state", zap.String("key", key), zap.Error(err))
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.log.Warn("discarding malformed saved state", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *stateService) Save(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Error("marshaling state", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.state.Set(ctx, key, raw); err != nil {
		s.log.Error("saving state", zap.String("key", key), zap.Error(err))
	}
}

func (s *stateService) Clear(ctx context.Context, key string) {
	if err := s.state.Remove(ctx, key); err != nil {
		s.log.Error("clearing state", zap.String("key", key), zap.Error(err))
	}
}
