package logic

import (
	"context"
	"time"

	"github.com/FaizanInstinct/bytebuddy-chat/dao"
	"github.com/FaizanInstinct/bytebuddy-chat/logger"
)

// CleanupLogic removes conversations idle past the retention window
type CleanupLogic struct {
	convoDAO  *dao.ConversationDAO
	retention time.Duration
}

func NewCleanupLogic(convoDAO *dao.ConversationDAO, retention time.Duration) *CleanupLogic {
	return &CleanupLogic{convoDAO: convoDAO, retention: retention}
}

// SweepExpired deletes every conversation whose last update is older than the
// retention window, cascading to its messages. Idempotent; safe to call
// concurrently and repeatedly.
func (l *CleanupLogic) SweepExpired() (int64, error) {
	cutoff := time.Now().Add(-l.retention)
	return l.convoDAO.DeleteExpiredConversations(cutoff)
}

// StartRetentionWorker runs a background goroutine that sweeps expired
// conversations at the given interval until the context is cancelled.
func (l *CleanupLogic) StartRetentionWorker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		logger.L.Info("retention worker started", "interval", interval, "retention", l.retention)

		for {
			select {
			case <-ticker.C:
				deleted, err := l.SweepExpired()
				if err != nil {
					logger.L.Error("retention sweep failed", "error", err)
					continue
				}
				if deleted > 0 {
					logger.L.Info("retention sweep removed expired conversations", "count", deleted)
				}
			case <-ctx.Done():
				logger.L.Info("retention worker shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}
