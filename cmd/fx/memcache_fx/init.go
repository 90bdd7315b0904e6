package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	mem "tripwise/pkg/memcache"
)

const sweepInterval = 10 * time.Minute

var Module = fx.Provide(provideDraftStore)

// provideDraftStore also runs a janitor that drops expired drafts for the
// lifetime of the app.
func provideDraftStore(lc fx.Lifecycle, logger *zap.Logger) mem.DraftStore {
	drafts := mem.NewDrafts()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(sweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if n := drafts.Sweep(); n > 0 {
							logger.Debug("Expired drafts removed", zap.Int("count", n))
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
	return drafts
}
