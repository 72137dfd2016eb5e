package cmd

import (
	"github.com/trly/nisclient/internal/config"
	"github.com/trly/nisclient/internal/execx"
	"github.com/trly/nisclient/internal/facts"
	"github.com/trly/nisclient/internal/fs"
	"github.com/trly/nisclient/internal/log"
	"github.com/trly/nisclient/internal/profile"
	"github.com/trly/nisclient/internal/resolver"
)

// App holds the application dependencies for command line interface.
type App struct {
	Logger         log.Logger
	Config         *config.Settings
	ConfigProvider config.Provider
	FSService      *fs.Service
	Detector       *facts.Detector
	Resolver       *resolver.Resolver
}

// NewApp creates a new App with all dependencies initialized.
func NewApp(logger log.Logger, configProv config.Provider, runner execx.Runner) *App {
	cfg := configProv.GetConfig()

	var classifierOpts []profile.Option
	if cfg.RedHatRPCBindReleases != nil {
		classifierOpts = append(classifierOpts, profile.WithRPCBindReleases(cfg.RedHatRPCBindReleases...))
	}
	classifier := profile.NewClassifier(classifierOpts...)

	return &App{
		Logger:         logger,
		Config:         cfg,
		ConfigProvider: configProv,
		FSService:      fs.NewServiceWithLogger(configProv, logger),
		Detector:       facts.NewDetector(runner, logger),
		Resolver:       resolver.New(logger, resolver.WithClassifier(classifier)),
	}
}
