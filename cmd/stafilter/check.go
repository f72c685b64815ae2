package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nlstn/go-stafilter"
)

type checkResult struct {
	Filter     string   `json:"filter"`
	Canonical  string   `json:"canonical"`
	Properties []string `json:"properties"`
}

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <filter>",
		Short: "Parse and type-check a filter and print its canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr := strings.Join(args, " ")
			f, err := stafilter.CompileContext(cmd.Context(), expr, a.opts...)
			if err != nil {
				return a.fail("filter rejected", err)
			}
			enc := json.NewEncoder(a.out)
			enc.SetIndent("", "  ")
			return enc.Encode(checkResult{
				Filter:     f.Text(),
				Canonical:  f.String(),
				Properties: f.Properties(),
			})
		},
	}
}
