// Command ihex inspects, verifies and converts Intel HEX files.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/moffa90/go-ihex/internal/logger"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// env carries the output streams shared by all commands.
type env struct {
	out    io.Writer
	errOut io.Writer
	styles styles
}

func newApp(out, errOut io.Writer) *cli.Command {
	e := &env{out: out, errOut: errOut, styles: newStyles()}

	var (
		configFile string
		logLevel   string
		logFormat  string
	)

	return &cli.Command{
		Name:      "ihex",
		Usage:     "Inspect, verify and convert Intel HEX files",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to config file",
				Value:       configPath(),
				Destination: &configFile,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Value:       "warn",
				Destination: &logLevel,
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "log format (pretty, text, json)",
				Value:       "pretty",
				Destination: &logFormat,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := LoadConfig(configFile)
			if err != nil {
				return ctx, err
			}
			applyLogConfig(cmd, cfg, &logLevel, &logFormat)

			log := logger.ForFormat(logFormat, errOut, logger.ParseLevel(logLevel))
			log.Debug("configuration loaded", "path", configFile, "variant", cfg.Variant)

			ctx = logger.WithContext(ctx, log)
			ctx = withConfig(ctx, cfg)
			return ctx, nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			inspectCmd(e),
			verifyCmd(e),
			dumpCmd(e),
			convertCmd(e),
			binCmd(e),
		},
	}
}
