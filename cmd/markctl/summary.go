package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/markview/mark"
)

func init() {
	rootCmd.AddCommand(newSummaryCmd())
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary <raw>...",
		Short: "Print the one-line summary of markable references",
		Long: `The summary command prints each reference the way a debugger shows it:
the address in hex, followed by "*" when the reference is marked.

Example:
  markctl summary 0x1021 0`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(args)
		},
	}
}

func runSummary(args []string) error {
	sums := make([]string, 0, len(args))
	for _, arg := range args {
		raw, err := parseReference(arg)
		if err != nil {
			return err
		}
		sums = append(sums, mark.Summary(raw))
	}

	if jsonOut {
		return printJSON(sums)
	}
	for _, s := range sums {
		printInfo("%s\n", s)
	}
	return nil
}
