package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/moffa90/go-ihex/ihex"
	"github.com/moffa90/go-ihex/internal/logger"
)

// maxBinSize bounds the flat image bin will allocate.
const maxBinSize = 256 << 20

func binCmd(e *env) *cli.Command {
	var pad, base, size string

	return &cli.Command{
		Name:      "bin",
		Usage:     "Flatten a HEX file into a raw binary image",
		ArgsUsage: "IN OUT",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "pad", Usage: "fill byte for gaps (default 0xFF)", Destination: &pad},
			&cli.StringFlag{Name: "base", Usage: "first address of the image (default lowest data address)", Destination: &base},
			&cli.StringFlag{Name: "size", Usage: "image size in bytes (default up to the highest data address)", Destination: &size},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return errors.New("bin needs IN and OUT arguments")
			}
			in, out := cmd.Args().Get(0), cmd.Args().Get(1)
			cfg := configFrom(ctx)
			log := logger.FromContext(ctx)

			fill := byte(0xFF)
			if cfg.Pad != nil {
				fill = byte(*cfg.Pad)
			}
			if pad != "" {
				v, err := strconv.ParseUint(pad, 0, 8)
				if err != nil {
					return fmt.Errorf("invalid --pad %q: %w", pad, err)
				}
				fill = byte(v)
			}

			records, _, err := ihex.ReadFile(in, ihex.WithLogger(log))
			if err != nil {
				return err
			}
			img, err := ihex.BuildImage(records)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}

			low, high := img.Bounds()
			if base != "" {
				v, err := strconv.ParseUint(base, 0, 32)
				if err != nil {
					return fmt.Errorf("invalid --base %q: %w", base, err)
				}
				low = uint32(v)
			}

			var n uint64
			if size != "" {
				v, err := strconv.ParseUint(size, 0, 32)
				if err != nil {
					return fmt.Errorf("invalid --size %q: %w", size, err)
				}
				n = v
			} else if high > uint64(low) {
				n = high - uint64(low)
			}
			if n > maxBinSize {
				return fmt.Errorf("image of %d bytes exceeds the %d byte limit", n, maxBinSize)
			}

			data := img.Bytes(low, uint32(n), fill)
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			log.Info("wrote binary image", "out", out, "base", low, "size", n)
			_, err = fmt.Fprintf(e.out, "%s %s -> %s, %d bytes from 0x%08X\n",
				e.styles.ok.Render("OK"), in, out, n, low)
			return err
		},
	}
}
