package sanitation

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/latchbio-nfcore/rnadnavar/logx"
	"github.com/latchbio-nfcore/rnadnavar/metrics"
	"github.com/latchbio-nfcore/rnadnavar/models"
	"github.com/latchbio-nfcore/rnadnavar/services/runs"
)

type (
	SanitationService struct {
		Initialized bool
		Config      *models.Config
		RunService  *runs.RunService

		scheduler *gocron.Scheduler
	}
)

func NewSanitationService(rz *runs.RunService, cfg *models.Config) *SanitationService {
	return &SanitationService{
		Initialized: false,
		Config:      cfg,
		RunService:  rz,
	}
}

// Init schedules the daily cleanup of stale run records. It is a no-op when
// run history is disabled or the service was already initialized.
func (ss *SanitationService) Init() error {
	if ss.Initialized || !ss.RunService.IsEnabled() {
		return nil
	}

	s := gocron.NewScheduler(time.UTC)
	if _, err := s.Every(1).Day().At(ss.Config.Sanitation.At).Do(func() {
		ss.SanitizeRuns(context.Background())
	}); err != nil {
		return err
	}
	s.StartAsync()

	ss.scheduler = s
	ss.Initialized = true
	logx.Log.Info().Str("at", ss.Config.Sanitation.At).Msg("run sanitation scheduled")
	return nil
}

func (ss *SanitationService) Stop() {
	if ss.scheduler != nil {
		ss.scheduler.Stop()
	}
}

// SanitizeRuns deletes run records older than the configured retention and
// returns how many were removed.
func (ss *SanitationService) SanitizeRuns(ctx context.Context) int {
	retention := time.Duration(ss.Config.Sanitation.RunRetentionDays) * 24 * time.Hour
	logx.Log.Info().Dur("retention", retention).Msg("Running run records cleanup..")

	deleted, err := ss.RunService.Sanitize(ctx, retention)
	if err != nil {
		if !errors.Is(err, runs.ErrRunHistoryDisabled) {
			logx.Log.Error().Err(err).Msg("run records cleanup failed")
		}
		return 0
	}

	metrics.RunRecordsSanitized.Add(float64(deleted))
	logx.Log.Info().Int("deleted", deleted).Msg("run records cleanup done")
	return deleted
}
