package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/moffa90/go-ihex/ihex"
	"github.com/moffa90/go-ihex/internal/logger"
)

// recordJSON is the JSON form of a record for dump --json.
type recordJSON struct {
	Index    int    `json:"index"`
	Type     string `json:"type"`
	TypeCode byte   `json:"type_code"`
	Address  uint32 `json:"address"`
	Length   int    `json:"length"`
	Data     string `json:"data,omitempty"`
	Checksum byte   `json:"checksum"`
}

type dumpJSON struct {
	Variant string       `json:"variant"`
	Records []recordJSON `json:"records"`
}

func dumpCmd(e *env) *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "dump",
		Usage:     "Print every record of a HEX file",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print records as JSON", Destination: &asJSON},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := argPath(cmd, 0, "FILE")
			if err != nil {
				return err
			}

			records, variant, err := ihex.ReadFile(path, ihex.WithLogger(logger.FromContext(ctx)))
			if err != nil {
				return err
			}

			if asJSON {
				return writeDumpJSON(e.out, records, variant)
			}
			return writeDumpText(e.out, records, variant)
		},
	}
}

func writeDumpJSON(w io.Writer, records []*ihex.Record, v ihex.Variant) error {
	out := dumpJSON{
		Variant: v.String(),
		Records: make([]recordJSON, 0, len(records)),
	}
	for i, rec := range records {
		out.Records = append(out.Records, recordJSON{
			Index:    i,
			Type:     rec.Type.String(),
			TypeCode: byte(rec.Type),
			Address:  rec.Address,
			Length:   len(rec.Data),
			Data:     strings.ToUpper(hex.EncodeToString(rec.Data)),
			Checksum: rec.Checksum,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeDumpText(w io.Writer, records []*ihex.Record, v ihex.Variant) error {
	addrWidth := v.AddressDigits()
	for i, rec := range records {
		_, err := fmt.Fprintf(w, "%5d  %-24s 0x%0*X  %3d  % X\n",
			i, rec.Type, addrWidth, rec.Address, len(rec.Data), rec.Data)
		if err != nil {
			return err
		}
	}
	return nil
}
