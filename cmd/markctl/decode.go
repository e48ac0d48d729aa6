package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/markview/mark"
)

func init() {
	cmd := newDecodeCmd()
	addArchFlag(cmd)
	rootCmd.AddCommand(cmd)
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <raw>...",
		Short: "Split markable references into address and mark",
		Long: `The decode command splits each raw reference into the address it points
at and its mark bit.

Example:
  markctl decode 0x1021
  markctl decode 0x1000 0x1001 --json
  markctl decode 0x1021 --arch ilp32`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(args)
		},
	}
}

type decodedOutput struct {
	Raw     string `json:"raw"`
	Address string `json:"address"`
	Marked  bool   `json:"marked"`
	Summary string `json:"summary"`
}

func runDecode(args []string) error {
	out := make([]decodedOutput, 0, len(args))
	for _, arg := range args {
		raw, arch, err := pointerRaw(arg)
		if err != nil {
			return err
		}
		d := mark.Decode(raw)
		out = append(out, decodedOutput{
			Raw:     mark.FormatPointer(raw, arch.PointerSize),
			Address: mark.FormatPointer(d.Address, arch.PointerSize),
			Marked:  d.Marked,
			Summary: mark.Summary(raw),
		})
	}

	if jsonOut {
		return printJSON(out)
	}
	for _, d := range out {
		printInfo("%s  address=%s marked=%t summary=%s\n", d.Raw, d.Address, d.Marked, d.Summary)
	}
	return nil
}
