package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/voltlabs/kernex/internal/config"
	"github.com/voltlabs/kernex/internal/logger"
)

func newApp() *cli.App {
	var cfgPath string
	var cfg *config.Config
	var zapLogger *zap.Logger
	var rootLogger *zap.Logger

	return &cli.App{
		Name:      "kernex",
		Usage:     "Validate and benchmark compute kernel variants",
		ArgsUsage: "[size dtype]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Value:       "kernex.yaml",
				Usage:       "Path to the kernex config file",
				EnvVars:     []string{"KERNEX_CONFIG"},
				Destination: &cfgPath,
			},
		},
		Before: func(c *cli.Context) error {
			var err error
			cfg, err = config.Load(cfgPath)
			if err != nil {
				return err
			}
			zapLogger, err = logger.New(cfg.Logger.Verbosity)
			if err != nil {
				return err
			}
			rootLogger = zapLogger.Named("cli")
			return nil
		},
		// Bare invocation runs the full profiling matrix; "size dtype"
		// profiles that single combination.
		Action: func(c *cli.Context) error {
			return runProfile(c, cfg, rootLogger)
		},
		Commands: []*cli.Command{
			profileCommand(&cfg, &rootLogger),
			verifyCommand(&cfg, &rootLogger),
			listCommand(&rootLogger),
			infoCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
