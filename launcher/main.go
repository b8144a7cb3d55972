package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/latchbio-nfcore/rnadnavar/logx"
	"github.com/latchbio-nfcore/rnadnavar/models"
	esRepo "github.com/latchbio-nfcore/rnadnavar/repositories/elasticsearch"
	"github.com/latchbio-nfcore/rnadnavar/services/launcher"
	"github.com/latchbio-nfcore/rnadnavar/services/parameters"
	"github.com/latchbio-nfcore/rnadnavar/services/runs"
	"github.com/latchbio-nfcore/rnadnavar/utils"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout))
}

// run returns the process exit code: 2 for usage or configuration errors,
// the engine's own code when it fails, 1 for anything else.
func run(ctx context.Context, args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("launcher", flag.ContinueOnError)
	paramsPath := fs.String("params", "", "YAML or JSON file with the resolved pipeline parameters [required]")
	dryRun := fs.Bool("dry-run", false, "print the engine command line and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// Gather environment variables
	var cfg models.Config
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintln(stdout, err)
		return 2
	}
	logx.SetDebug(cfg.Debug)

	if *paramsPath == "" {
		fs.Usage()
		return 2
	}

	raw, err := utils.ReadParametersFile(*paramsPath)
	if err != nil {
		logx.Log.Error().Err(err).Str("path", *paramsPath).Msg("cannot read parameters")
		return 1
	}
	params, err := parameters.Resolve(raw, cfg.Engine.EmitDefaults)
	if err != nil {
		logx.Log.Error().Err(err).Msg("cannot resolve parameters")
		return 1
	}

	if *dryRun {
		fmt.Fprintln(stdout, strings.Join(launcher.BuildCommandLine(&cfg, params), " "))
		return 0
	}

	// Service Connections:
	// -- Elasticsearch (optional run history)
	var repo runs.Repository
	es, err := utils.CreateEsConnection(&cfg)
	if err != nil {
		logx.Log.Warn().Err(err).Msg("run history disabled")
	} else if es != nil {
		rr := esRepo.NewRunsRepository(es, &cfg)
		if err := rr.EnsureRunsIndex(ctx); err != nil {
			logx.Log.Warn().Err(err).Msg("cannot ensure runs index")
		}
		repo = rr
	}

	l := launcher.NewLauncher(&cfg, runs.NewRunService(repo))
	if err := l.Run(ctx, params); err != nil {
		logx.Log.Error().Err(err).Msg("run failed")
		return launcher.ExitCode(err)
	}
	return 0
}
