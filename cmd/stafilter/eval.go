package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nlstn/go-stafilter"
)

func newEvalCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <filter> [file]",
		Short: "Print the JSON records that match a filter",
		Long: `Reads JSON records (a stream of objects or arrays of objects) from file or
standard input and writes every matching record as one line of JSON.
Records without an "@iot.id" are given a random one.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := a.in
			if len(args) == 2 && args[1] != "-" {
				file, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer file.Close()
				in = file
			}

			f, err := stafilter.CompileContext(cmd.Context(), args[0], a.opts...)
			if err != nil {
				return a.fail("filter rejected", err)
			}

			schema, err := a.cfg.schema()
			if err != nil {
				return err
			}
			records, err := decodeRecords(in, schema)
			if err != nil {
				return err
			}
			return a.eval(cmd, f, records)
		},
	}
	cmd.Flags().IntP("workers", "w", 0, "Number of records evaluated concurrently (default GOMAXPROCS)")
	_ = a.v.BindPFlag("workers", cmd.Flags().Lookup("workers"))
	return cmd
}

func (a *app) eval(cmd *cobra.Command, f *stafilter.Filter, records []*record) error {
	candidates := make([]stafilter.Candidate, len(records))
	for i, r := range records {
		candidates[i] = r
	}

	matches, selErr := f.Select(cmd.Context(), candidates)
	if err := writeMatches(a.out, records, matches); err != nil {
		return err
	}
	a.logger.Info("filter evaluated",
		slog.String("filter", f.String()),
		slog.Int("records", len(records)),
		slog.Int("matched", len(matches)),
	)
	if selErr != nil {
		return a.fail("some records could not be evaluated", selErr)
	}
	return nil
}

func writeMatches(w io.Writer, records []*record, matches []int) error {
	enc := json.NewEncoder(w)
	for _, i := range matches {
		if err := enc.Encode(records[i].raw); err != nil {
			return fmt.Errorf("writing record %s: %w", records[i].id, err)
		}
	}
	return nil
}
