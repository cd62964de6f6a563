package healthcheck

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/mileusna/crontab"
	"resty.dev/v3"

	"animehi.app/anime-api-gateway/app/infrastructure/cache"
	"animehi.app/anime-api-gateway/app/utils/httpclients"
	"animehi.app/anime-api-gateway/app/utils/logger"
	"animehi.app/anime-api-gateway/config/environment_variables"
)

// HealthcheckCrontabService pings the deployment's own /health endpoint on a
// schedule so free-tier hosts never idle the instance out. Only runs when
// HOSTNAME is configured; personal deployments skip it entirely.
type HealthcheckCrontabService struct {
	client  *resty.Client
	redsync *redsync.Redsync
}

func NewService(rs *redsync.Redsync) *HealthcheckCrontabService {
	return &HealthcheckCrontabService{
		client:  httpclients.NewClient("healthcheck"),
		redsync: rs,
	}
}

func (hs *HealthcheckCrontabService) Start(ctx context.Context, ctab *crontab.Crontab) {
	hostname := environment_variables.EnvironmentVariables.HOSTNAME
	if hostname == "" {
		logger.GetLogger().Info("HOSTNAME not set, self-ping disabled")
		return
	}

	target := fmt.Sprintf("https://%s/health", hostname)
	// crontab schedules at minute granularity; 9 minutes keeps the instance
	// warm well inside the usual 15-minute idle cutoff.
	ctab.AddJob("*/9 * * * *", func() {
		hs.ping(ctx, target)
		environment_variables.EnvironmentVariables.LoadFromEnv()
	})
}

// ping fires one self-request, guarded by a distributed lock when Redis is
// present so multiple replicas produce one ping per cycle, not one each.
func (hs *HealthcheckCrontabService) ping(ctx context.Context, target string) {
	if hs.redsync != nil {
		mutex := hs.redsync.NewMutex(cache.HealthcheckLockKey,
			redsync.WithExpiry(time.Minute),
			redsync.WithTries(1),
		)
		if err := mutex.LockContext(ctx); err != nil {
			// Another replica holds the lock and pings this cycle.
			return
		}
		defer func() {
			if _, err := mutex.UnlockContext(ctx); err != nil {
				logger.GetLogger().Warnf("healthcheck: failed to release lock: %v", err)
			}
		}()
	}

	resp, err := hs.client.R().SetContext(ctx).Get(target)
	if err != nil {
		logger.GetLogger().Warnf("healthcheck: self-ping failed: %v", err)
		return
	}
	if resp.IsError() {
		logger.GetLogger().Warnf("healthcheck: self-ping returned %d", resp.StatusCode())
	}
}
