package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/markview/internal/format"
	"github.com/joshuapare/markview/mark"
)

var (
	chainField string
	chainLimit int
)

func init() {
	cmd := newChainCmd()
	addTargetFlags(cmd)
	cmd.Flags().StringVarP(&chainField, "field", "f", format.NextField, "Markable field linking one node to the next")
	cmd.Flags().IntVarP(&chainLimit, "limit", "n", 1000, "Maximum nodes to follow (0 = unlimited)")
	rootCmd.AddCommand(cmd)
}

func newChainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chain <raw>",
		Short: "Walk a list of nodes linked by markable references",
		Long: `The chain command follows the markable link field from node to node,
starting at raw, and lists every node it reaches. Nodes whose own link is
marked are logically deleted.

Example:
  markctl chain 0x1000 -s 0x1000=heap.bin
  markctl chain 0x1000 -s 0x1000=heap.bin --field _next --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChain(args)
		},
	}
}

type chainLinkOutput struct {
	Index   int    `json:"index"`
	Ref     string `json:"ref"`
	Address string `json:"address"`
	Next    string `json:"next"`
	Deleted bool   `json:"deleted"`
}

type chainOutput struct {
	Links []chainLinkOutput `json:"links"`
	Error string            `json:"error,omitempty"`
}

func runChain(args []string) error {
	raw, err := parseReference(args[0])
	if err != nil {
		return err
	}

	tg, img, err := openTarget()
	if err != nil {
		return err
	}
	defer img.Close()

	links, walkErr := mark.Chain(mark.NewResolver(tg, targetType), raw, chainField, chainLimit)

	out := chainOutput{Links: make([]chainLinkOutput, 0, len(links))}
	for i, l := range links {
		out.Links = append(out.Links, chainLinkOutput{
			Index:   i,
			Ref:     mark.Summary(l.Ref.Raw()),
			Address: fmt.Sprintf("%#x", l.Ref.Address),
			Next:    mark.Summary(l.Next.Raw()),
			Deleted: l.Deleted(),
		})
	}
	if walkErr != nil {
		out.Error = walkErr.Error()
	}

	if jsonOut {
		if err := printJSON(out); err != nil {
			return err
		}
	} else {
		for _, l := range out.Links {
			deleted := ""
			if l.Deleted {
				deleted = "  (deleted)"
			}
			printInfo("[%d] %s -> %s%s\n", l.Index, l.Ref, l.Next, deleted)
		}
		printInfo("%d node(s)\n", len(out.Links))
	}

	// A cycle is reported but the nodes before it are still a useful answer.
	if errors.Is(walkErr, mark.ErrCycle) {
		printVerbose("Chain stopped: %v\n", walkErr)
		return nil
	}
	if walkErr != nil {
		return fmt.Errorf("chain stopped after %d node(s): %w", len(links), walkErr)
	}
	return nil
}
