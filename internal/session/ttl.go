package session

import (
	"context"
	"log/slog"
	"time"
)

const ttlWorkerInterval = 5 * time.Minute

// StartTTLWorker runs a background goroutine that periodically discards
// sessions whose candidates went quiet. Abandoned conversations are dropped
// without archival; only completed screenings are persisted.
func StartTTLWorker(ctx context.Context, m *Manager, ttl time.Duration) {
	ticker := time.NewTicker(ttlWorkerInterval)
	go func() {
		defer ticker.Stop()
		slog.Info("Session TTL worker started", "interval", ttlWorkerInterval, "ttl", ttl)

		for {
			select {
			case <-ticker.C:
				sweepExpired(m, ttl)
			case <-ctx.Done():
				slog.Info("Session TTL worker shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}

func sweepExpired(m *Manager, ttl time.Duration) {
	expired := m.Expired(ttl)
	if len(expired) == 0 {
		return
	}

	for _, id := range expired {
		m.Discard(id)
	}
	slog.Info("Session TTL worker discarded idle sessions", "count", len(expired))
}
