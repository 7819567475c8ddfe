package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/moffa90/go-ihex/ihex"
	"github.com/moffa90/go-ihex/internal/logger"
)

func verifyCmd(e *env) *cli.Command {
	var lenient bool

	return &cli.Command{
		Name:      "verify",
		Usage:     "Check every record of a HEX file",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "lenient",
				Usage:       "accept files without an end of file record",
				Destination: &lenient,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := argPath(cmd, 0, "FILE")
			if err != nil {
				return err
			}

			log := logger.FromContext(ctx)
			records, variant, err := ihex.ReadFile(path,
				ihex.WithLogger(log),
				ihex.WithRequireEndRecord(!lenient),
			)
			if err != nil {
				_, _ = fmt.Fprintln(e.out, e.styles.err.Render("FAIL")+" "+path+": "+describeError(err))
				return err
			}

			_, err = fmt.Fprintf(e.out, "%s %s: %d records, %s\n",
				e.styles.ok.Render("OK"), path, len(records), variant)
			return err
		},
	}
}

// describeError turns a session error into an operator-facing message.
func describeError(err error) string {
	switch {
	case errors.Is(err, ihex.ErrFileOpen):
		return "Cannot open HEX file"
	case errors.Is(err, ihex.ErrUnknownFormat):
		return "Unknown HEX file type"
	case errors.Is(err, ihex.ErrChecksumMismatch):
		return "HEX record checksum error"
	case errors.Is(err, ihex.ErrLengthMismatch):
		return "HEX record length error"
	case errors.Is(err, ihex.ErrMalformedRecord):
		return "Malformed HEX record"
	case errors.Is(err, ihex.ErrMissingEndRecord):
		return "HEX file has no end record"
	case errors.Is(err, ihex.ErrIO):
		return "HEX file I/O error"
	default:
		return "HEX file error"
	}
}
