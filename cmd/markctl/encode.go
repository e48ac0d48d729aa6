package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/markview/mark"
)

var encodeMarked bool

func init() {
	cmd := newEncodeCmd()
	cmd.Flags().BoolVarP(&encodeMarked, "mark", "m", false, "Set the mark bit")
	addArchFlag(cmd)
	rootCmd.AddCommand(cmd)
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <address>",
		Short: "Build a markable reference from an address",
		Long: `The encode command prints the raw bits of a reference to address, with
the mark bit set when --mark is given. Bit 0 of address is ignored.

Example:
  markctl encode 0x1020 --mark`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(args)
		},
	}
}

func runEncode(args []string) error {
	addr, arch, err := pointerRaw(args[0])
	if err != nil {
		return err
	}
	raw := mark.Encode(addr, encodeMarked)
	if mark.IsMarked(addr) {
		printVerbose("Ignoring bit 0 of %#x\n", addr)
	}

	if jsonOut {
		return printJSON(decodedOutput{
			Raw:     mark.FormatPointer(raw, arch.PointerSize),
			Address: mark.FormatPointer(mark.Unmark(raw), arch.PointerSize),
			Marked:  encodeMarked,
			Summary: mark.Summary(raw),
		})
	}
	printInfo("%#x\n", raw)
	return nil
}
