package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/markview/internal/format"
	"github.com/joshuapare/markview/mark/host"
	"github.com/joshuapare/markview/mark/printer"
	"github.com/joshuapare/markview/pkg/types"
)

var (
	inspectAs        string
	inspectName      string
	inspectDepth     int
	inspectAddresses bool
	inspectNoTypes   bool
)

func init() {
	cmd := newInspectCmd()
	addTargetFlags(cmd)
	cmd.Flags().StringVar(&inspectAs, "as", format.MarkableType,
		"Type of the inspected value; anything but markable_ptr_t reads the value at the given address")
	cmd.Flags().StringVar(&inspectName, "name", "ref", "Name shown for the inspected value")
	cmd.Flags().IntVarP(&inspectDepth, "depth", "d", 0, "Maximum levels to print (0 = unlimited)")
	cmd.Flags().BoolVar(&inspectAddresses, "addresses", false, "Show where each value lives")
	cmd.Flags().BoolVar(&inspectNoTypes, "no-types", false, "Hide type names")
	rootCmd.AddCommand(cmd)
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <raw|address>",
		Short: "Resolve a markable reference and print the node tree",
		Long: `The inspect command resolves a markable reference against a memory image
and prints the node it points at, following further markable references.

With --as set to another type, the argument is the address of a value of that
type (for example a list header) and the value is printed from there.

Example:
  markctl inspect 0x1001 -s 0x1000=heap.bin
  markctl inspect 0x1080 -s 0x1000=heap.bin --as SPCLockFreeList
  markctl inspect 0x1000 -s 0x1000=heap.bin --layout nodes.yaml --type _Node --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args)
		},
	}
}

func runInspect(args []string) error {
	raw, err := parseReference(args[0])
	if err != nil {
		return err
	}

	tg, img, err := openTarget()
	if err != nil {
		return err
	}
	defer img.Close()

	cfg := host.DefaultConfig()
	cfg.Arch = tg.Arch()
	cfg.TargetType = targetType
	s, err := host.NewDefaultSession(tg, cfg)
	if err != nil {
		return err
	}

	var v types.Value
	if inspectAs == format.MarkableType {
		v, err = tg.Markable(inspectName, raw)
		if err != nil {
			return err
		}
	} else {
		t, err := tg.Types.Lookup(inspectAs)
		if err != nil {
			return fmt.Errorf("failed to inspect: %w", err)
		}
		v = tg.ValueAt(inspectName, raw, t)
	}

	opts := printer.DefaultOptions()
	opts.MaxDepth = inspectDepth
	opts.ShowAddresses = inspectAddresses
	opts.ShowTypes = !inspectNoTypes
	if jsonOut {
		opts.Format = printer.FormatJSON
	}

	if quiet {
		return nil
	}
	return printer.New(s, os.Stdout, opts).PrintValue(v)
}
