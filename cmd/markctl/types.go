package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := newTypesCmd()
	addLayoutFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types [name]...",
		Short: "List known struct layouts",
		Long: `The types command lists the struct layouts available for --type and --as:
the builtin lock-free list layouts plus any loaded with --layout. With names,
only those types are shown.

Example:
  markctl types
  markctl types _SPCLockFreeListNode --arch ilp32
  markctl types --layout nodes.yaml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypes(args)
		},
	}
}

type fieldOutput struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Offset int    `json:"offset"`
	Size   int    `json:"size"`
}

type typeOutput struct {
	Name   string        `json:"name"`
	Size   int           `json:"size"`
	Align  int           `json:"align"`
	Fields []fieldOutput `json:"fields"`
}

func runTypes(args []string) error {
	reg, err := loadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load layouts: %w", err)
	}

	names := args
	if len(names) == 0 {
		names = reg.Structs()
	}

	out := make([]typeOutput, 0, len(names))
	for _, name := range names {
		t, err := reg.Lookup(name)
		if err != nil {
			return err
		}
		to := typeOutput{Name: name, Size: t.Size, Align: t.Align}
		for _, f := range t.Fields {
			to.Fields = append(to.Fields, fieldOutput{Name: f.Name, Type: f.Type.Name, Offset: f.Offset, Size: f.Type.Size})
		}
		out = append(out, to)
	}

	if jsonOut {
		return printJSON(out)
	}
	for _, t := range out {
		printInfo("%s (size %d, align %d)\n", t.Name, t.Size, t.Align)
		for _, f := range t.Fields {
			printInfo("  %-6s %-24s %s\n", fmt.Sprintf("+%#x", f.Offset), f.Name, f.Type)
		}
	}
	return nil
}
