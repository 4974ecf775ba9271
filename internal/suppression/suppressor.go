// Package suppression implements the realert window: after an alert fires
// for a rule, further alerts for the same rule are silenced until the window
// expires. State lives in Redis so restarts keep the window.
package suppression

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SilenceState records when and why a rule was silenced.
type SilenceState struct {
	SilencedAt int64  `json:"silenced_at"` // Unix timestamp
	Until      int64  `json:"until"`       // Unix timestamp
	SourceRef  string `json:"source_ref"`
}

// Suppressor tracks per-rule silence windows in Redis.
type Suppressor struct {
	redis   *redis.Client
	enabled bool
}

// NewSuppressor creates a suppressor. When disabled or without a client it
// never silences anything.
func NewSuppressor(redisClient *redis.Client, enabled bool) *Suppressor {
	return &Suppressor{
		redis:   redisClient,
		enabled: enabled,
	}
}

// IsEnabled returns whether suppression state is being tracked.
func (s *Suppressor) IsEnabled() bool {
	return s.enabled && s.redis != nil
}

// IsSilenced reports whether the rule is inside an active silence window.
func (s *Suppressor) IsSilenced(ctx context.Context, ruleName string) (bool, error) {
	if !s.IsEnabled() {
		return false, nil
	}

	exists, err := s.redis.Exists(ctx, silenceKey(ruleName)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check silence: %w", err)
	}
	return exists > 0, nil
}

// Silence opens a silence window for the rule. A non-positive window is a
// no-op.
func (s *Suppressor) Silence(ctx context.Context, ruleName, sourceRef string, window time.Duration) error {
	if !s.IsEnabled() || window <= 0 {
		return nil
	}

	now := time.Now()
	state := SilenceState{
		SilencedAt: now.Unix(),
		Until:      now.Add(window).Unix(),
		SourceRef:  sourceRef,
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal silence state: %w", err)
	}

	if err := s.redis.Set(ctx, silenceKey(ruleName), data, window).Err(); err != nil {
		return fmt.Errorf("failed to save silence state: %w", err)
	}

	return nil
}

// GetSilence returns the active silence state for a rule, or nil when the
// rule is not silenced.
func (s *Suppressor) GetSilence(ctx context.Context, ruleName string) (*SilenceState, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	data, err := s.redis.Get(ctx, silenceKey(ruleName)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get silence state: %w", err)
	}

	var state SilenceState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal silence state: %w", err)
	}
	return &state, nil
}

// silenceKey generates the Redis key for a rule's silence window.
func silenceKey(ruleName string) string {
	return fmt.Sprintf("silence:%s", ruleName)
}
