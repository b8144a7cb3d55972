package launcher

import (
	"context"
	"io"
	"net/http"
	"os"

	"github.com/latchbio-nfcore/rnadnavar/logx"
	"github.com/latchbio-nfcore/rnadnavar/models"
	rs "github.com/latchbio-nfcore/rnadnavar/models/constants/run-state"
	serviceInfo "github.com/latchbio-nfcore/rnadnavar/models/constants/service-info"
	"github.com/latchbio-nfcore/rnadnavar/services/runs"
)

type (
	Launcher struct {
		Config     *models.Config
		HttpClient *http.Client
		Runs       *runs.RunService
		Names      ExecutionNameResolver
		Uploader   LogUploader

		// inherited environment, captured once at construction
		Environ []string
		Stdout  io.Writer
		Stderr  io.Writer
	}
)

func NewLauncher(cfg *models.Config, rz *runs.RunService) *Launcher {
	client := &http.Client{}
	return &Launcher{
		Config:     cfg,
		HttpClient: client,
		Runs:       rz,
		Names:      &PlatformNameResolver{Config: cfg, HttpClient: client},
		Uploader:   &DataApiUploader{Config: cfg, HttpClient: client},
		Environ:    os.Environ(),
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
}

// Run performs one pipeline execution: provision, stage, build the command
// line, execute, and on the way out upload the engine log. Each step blocks
// on the previous one and the first failure ends the run.
func (l *Launcher) Run(ctx context.Context, params models.ResolvedParameters) (err error) {
	if l.Config.Platform.ExecutionToken == "" {
		return ErrMissingExecutionToken
	}

	record := l.Runs.Begin(ctx, string(serviceInfo.PIPELINE_ID))
	defer func() {
		l.Runs.Finish(ctx, record, err, ExitCode(err))
	}()

	claim, err := l.Provision(ctx)
	if err != nil {
		return err
	}
	record.StorageClaim = claim
	l.Runs.Advance(ctx, record, rs.Running)

	scope := l.openLogScope()
	defer func() {
		record.ExecutionName, record.LogPath = scope.Close(ctx)
	}()

	shared := l.Config.Staging.SharedDirectory
	if err := StageDirectory(l.Config.Staging.SourceDirectory, shared, l.Config.Staging.IgnoreList); err != nil {
		return err
	}

	command := BuildCommandLine(l.Config, params)
	record.CommandLine = command

	err = l.Execute(command, BuildEnvironment(l.Config, l.Environ, claim), shared)
	if err != nil {
		logx.Log.Error().Err(err).Msg("workflow engine run failed")
	}
	return err
}
