package runs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/latchbio-nfcore/rnadnavar/logx"
	"github.com/latchbio-nfcore/rnadnavar/models/constants"
	rs "github.com/latchbio-nfcore/rnadnavar/models/constants/run-state"
	"github.com/latchbio-nfcore/rnadnavar/models/indexes"
)

var (
	ErrRunHistoryDisabled = errors.New("run history is not configured")
	ErrRunNotFound        = errors.New("run not found")
)

type Repository interface {
	SaveRun(ctx context.Context, record indexes.RunRecord) error
	GetRun(ctx context.Context, id string) (*indexes.RunRecord, error)
	GetRuns(ctx context.Context, size int) ([]indexes.RunRecord, error)
	DeleteRunsUpdatedBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type (
	RunService struct {
		repo Repository
		now  func() time.Time
	}
)

// NewRunService accepts a nil repository, in which case records are only
// logged and reads report ErrRunHistoryDisabled.
func NewRunService(repo Repository) *RunService {
	return &RunService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *RunService) IsEnabled() bool {
	return s.repo != nil
}

func (s *RunService) Begin(ctx context.Context, pipeline string) *indexes.RunRecord {
	stamp := s.timestamp()
	record := &indexes.RunRecord{
		Id:        uuid.New().String(),
		Pipeline:  pipeline,
		State:     rs.Queued,
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}
	s.save(ctx, record)
	return record
}

func (s *RunService) Advance(ctx context.Context, record *indexes.RunRecord, state constants.RunState) {
	record.State = state
	record.UpdatedAt = s.timestamp()
	s.save(ctx, record)
}

// Finish moves the record to Done or Error depending on runErr.
func (s *RunService) Finish(ctx context.Context, record *indexes.RunRecord, runErr error, exitCode int) {
	record.ExitCode = exitCode
	if runErr != nil {
		record.State = rs.Error
		record.Message = runErr.Error()
	} else {
		record.State = rs.Done
		record.Message = ""
	}
	record.UpdatedAt = s.timestamp()
	s.save(ctx, record)
}

func (s *RunService) List(ctx context.Context, size int) ([]indexes.RunRecord, error) {
	if s.repo == nil {
		return nil, ErrRunHistoryDisabled
	}
	return s.repo.GetRuns(ctx, size)
}

func (s *RunService) Get(ctx context.Context, id string) (*indexes.RunRecord, error) {
	if s.repo == nil {
		return nil, ErrRunHistoryDisabled
	}
	return s.repo.GetRun(ctx, id)
}

// Sanitize removes records that have not been updated for retention.
func (s *RunService) Sanitize(ctx context.Context, retention time.Duration) (int, error) {
	if s.repo == nil {
		return 0, ErrRunHistoryDisabled
	}
	return s.repo.DeleteRunsUpdatedBefore(ctx, s.now().UTC().Add(-retention))
}

// recording never fails a run
func (s *RunService) save(ctx context.Context, record *indexes.RunRecord) {
	event := logx.Log.Debug().
		Str("run", record.Id).
		Str("state", string(record.State))
	if s.repo == nil {
		event.Msg("run record (history disabled)")
		return
	}
	if err := s.repo.SaveRun(ctx, *record); err != nil {
		logx.Log.Warn().Err(err).Str("run", record.Id).Msg("failed to save run record")
		return
	}
	event.Msg("run record saved")
}

func (s *RunService) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
