package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/pavelzar/mailpost/internal/models"
)

// StartPendingCleaner deletes subscriptions that are still awaiting
// confirmation after the retention window. Token rows are removed with
// their subscriber via ON DELETE CASCADE, so a pending row and its token
// always disappear together. Confirmed subscribers are never touched.
func StartPendingCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().UTC().Add(-retention)
				res, err := db.ExecContext(ctx, `
                    DELETE FROM subscriptions
                     WHERE status = $1
                       AND subscribed_at < $2
                `, models.StatusPendingConfirmation, cutoff)
				if err != nil {
					log.Error("failed to clean stale pending subscriptions", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("cleaned stale pending subscriptions", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
