package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/moffa90/go-ihex/ihex"
	"github.com/moffa90/go-ihex/internal/logger"
)

func convertCmd(e *env) *cli.Command {
	var (
		to         string
		lineLength int
	)

	return &cli.Command{
		Name:      "convert",
		Usage:     "Rewrite a HEX file in another address width",
		ArgsUsage: "IN OUT",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "to",
				Usage:       "output variant (ihx8 or ihx16)",
				Destination: &to,
			},
			&cli.IntFlag{
				Name:        "line-length",
				Usage:       "data bytes per record",
				Destination: &lineLength,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return errors.New("convert needs IN and OUT arguments")
			}
			in, out := cmd.Args().Get(0), cmd.Args().Get(1)

			cfg := configFrom(ctx)
			log := logger.FromContext(ctx)

			variant, err := outputVariant(to, cfg)
			if err != nil {
				return err
			}
			if !cmd.IsSet("line-length") && cfg.LineLength != nil {
				lineLength = *cfg.LineLength
			}

			records, from, err := ihex.ReadFile(in, ihex.WithLogger(log))
			if err != nil {
				return err
			}
			img, err := ihex.BuildImage(records)
			if err != nil {
				return fmt.Errorf("%s: %w", in, err)
			}

			if err := writeImageFile(out, img, variant, lineLength, log); err != nil {
				return err
			}

			log.Info("converted hex file", "in", in, "out", out, "from", from.String(), "to", variant.String())
			_, err = fmt.Fprintf(e.out, "%s %s (%s) -> %s (%s), %d bytes\n",
				e.styles.ok.Render("OK"), in, from, out, variant, img.Size())
			return err
		},
	}
}

// outputVariant picks the flag value, then the config default, then ihx8.
func outputVariant(flag string, cfg Config) (ihex.Variant, error) {
	switch {
	case flag != "":
		return ihex.ParseVariant(flag)
	case cfg.Variant != "":
		return ihex.ParseVariant(cfg.Variant)
	default:
		return ihex.Width16, nil
	}
}

func writeImageFile(path string, img *ihex.Image, v ihex.Variant, lineLength int, log logger.Logger) error {
	f, err := ihex.Create(path, v, ihex.WithLogger(log))
	if err != nil {
		return err
	}

	if err := ihex.WriteImage(f, img, lineLength); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
