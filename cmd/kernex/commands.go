package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/common-nighthawk/go-figure"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/voltlabs/kernex/internal/config"
	"github.com/voltlabs/kernex/internal/dtype"
	"github.com/voltlabs/kernex/internal/harness"
	"github.com/voltlabs/kernex/internal/kernel"
	"github.com/voltlabs/kernex/internal/metrics"
	"github.com/voltlabs/kernex/internal/registry"
)

func newHarness(cfg *config.Config, log *zap.Logger, progress bool) *harness.Harness {
	reg := registry.New(log)
	opts := harness.Options{
		Seed:        cfg.Seed,
		Warmup:      cfg.Profile.Warmup,
		FailOnEmpty: cfg.Registry.FailOnEmpty,
		Progress:    progress,
	}
	return harness.New(reg, opts, os.Stdout, log)
}

// parseSizeDType parses the two positional arguments of profile/verify.
func parseSizeDType(c *cli.Context) (int, dtype.DType, error) {
	size, err := strconv.Atoi(c.Args().Get(0))
	if err != nil || size <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: want a positive integer", c.Args().Get(0))
	}
	dt, err := dtype.Parse(c.Args().Get(1))
	if err != nil {
		return 0, 0, err
	}
	return size, dt, nil
}

func runProfile(c *cli.Context, cfg *config.Config, log *zap.Logger) error {
	if cfg.Metrics.Listen != "" {
		metrics.Serve(cfg.Metrics.Listen, log)
	}
	h := newHarness(cfg, log, false)
	switch c.NArg() {
	case 0:
		return h.ProfileSweep(cfg.Profile.Sizes)
	case 2:
		size, dt, err := parseSizeDType(c)
		if err != nil {
			return err
		}
		return h.ProfileWithArgs(size, dt)
	default:
		return fmt.Errorf("expected no arguments (full sweep) or: size dtype")
	}
}

func profileCommand(cfg **config.Config, log **zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "profile",
		Usage:     "Rank kernel variants by throughput",
		ArgsUsage: "[size dtype]",
		Action: func(c *cli.Context) error {
			return runProfile(c, *cfg, *log)
		},
	}
}

func verifyCommand(cfg **config.Config, log **zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Check every kernel variant against the reference computation",
		ArgsUsage: "[size dtype]",
		Action: func(c *cli.Context) error {
			h := newHarness(*cfg, *log, true)
			var failures []error
			switch c.NArg() {
			case 0:
				failures = h.VerifySweep((*cfg).Verify.Sizes)
			case 2:
				size, dt, err := parseSizeDType(c)
				if err != nil {
					return err
				}
				reg := registry.New(*log)
				for _, d := range reg.VariantsFor(dt) {
					if err := h.Verify(size, dt, d); err != nil {
						failures = append(failures, err)
					}
				}
			default:
				return fmt.Errorf("expected no arguments (full sweep) or: size dtype")
			}
			if len(failures) > 0 {
				for _, err := range failures {
					fmt.Fprintln(os.Stderr, err)
				}
				return fmt.Errorf("%d correctness check(s) failed", len(failures))
			}
			fmt.Println("all correctness checks passed")
			return nil
		},
	}
}

func listCommand(log **zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List registered kernel variants per dtype",
		Action: func(c *cli.Context) error {
			reg := registry.New(*log)
			for _, dt := range dtype.All() {
				fmt.Printf("%s:\n", dt)
				for _, d := range reg.VariantsFor(dt) {
					fmt.Printf("  %s\n", d.Name)
				}
			}
			return nil
		},
	}
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:  "info",
		Usage: "Show the compute device kernels execute on",
		Action: func(c *cli.Context) error {
			banner := figure.NewFigure("kernex", "", true)
			banner.Print()
			fmt.Println()
			info := kernel.GetDeviceInfo()
			fmt.Printf("Device: %s\n", info.Name)
			fmt.Printf("Cores:  %d\n", info.Cores)
			return nil
		},
	}
}
