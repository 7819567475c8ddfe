package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/moffa90/go-ihex/ihex"
	"github.com/moffa90/go-ihex/internal/logger"
)

// summary collects what inspect reports about a file.
type summary struct {
	variant ihex.Variant
	records int
	counts  map[ihex.RecordType]int
	image   *ihex.Image
}

func inspectCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Summarize the records and memory layout of a HEX file",
		ArgsUsage: "FILE",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := argPath(cmd, 0, "FILE")
			if err != nil {
				return err
			}

			records, variant, err := ihex.ReadFile(path, ihex.WithLogger(logger.FromContext(ctx)))
			if err != nil {
				return err
			}

			s, err := summarize(records, variant)
			if err != nil {
				return err
			}

			return printSummary(e.out, e.styles, path, s)
		},
	}
}

func summarize(records []*ihex.Record, v ihex.Variant) (*summary, error) {
	s := &summary{
		variant: v,
		records: len(records),
		counts:  make(map[ihex.RecordType]int),
	}
	for _, rec := range records {
		s.counts[rec.Type]++
	}

	img, err := ihex.BuildImage(records)
	if err != nil {
		return nil, err
	}
	s.image = img

	return s, nil
}

func printSummary(w io.Writer, st styles, path string, s *summary) error {
	var sb strings.Builder

	sb.WriteString(st.title.Render("HEX Inspect: "+path) + "\n")
	sb.WriteString(st.field("Format:", fmt.Sprintf("%s (%d-digit addresses)", s.variant, s.variant.AddressDigits())))

	var parts []string
	for t := ihex.Data; t <= ihex.StartLinearAddress; t++ {
		if n := s.counts[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", t, n))
		}
	}
	sb.WriteString(st.field("Records:", fmt.Sprintf("%d (%s)", s.records, strings.Join(parts, ", "))))
	sb.WriteString(st.field("Data:", fmt.Sprintf("%d bytes in %d segments", s.image.Size(), len(s.image.Segments))))

	if len(s.image.Segments) > 0 {
		low, high := s.image.Bounds()
		sb.WriteString(st.field("Range:", fmt.Sprintf("0x%08X-0x%08X", low, high-1)))
		for _, seg := range s.image.Segments {
			sb.WriteString(st.field("", fmt.Sprintf("0x%08X +%d", seg.Address, len(seg.Data))))
		}
	}
	if s.image.HasStart {
		sb.WriteString(st.field("Start:", fmt.Sprintf("0x%08X", s.image.Start)))
	}
	if s.counts[ihex.EndOfFile] == 0 {
		sb.WriteString(st.err.Render("warning: no end of file record") + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// argPath returns the positional argument at index i.
func argPath(cmd *cli.Command, i int, name string) (string, error) {
	p := cmd.Args().Get(i)
	if p == "" {
		return "", errors.New("missing " + name + " argument")
	}
	return p, nil
}
