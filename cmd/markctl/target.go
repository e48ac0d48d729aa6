package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/markview/internal/format"
	"github.com/joshuapare/markview/internal/memory"
	"github.com/joshuapare/markview/mark"
)

// Flags shared by every command that reads a memory image.
var (
	segmentSpecs []string
	archName     string
	layoutPath   string
	targetType   string
)

func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&segmentSpecs, "segment", "s", nil, "Memory segment as ADDR=FILE (repeatable)")
	addLayoutFlags(cmd)
	cmd.Flags().StringVarP(&targetType, "type", "t", format.LockFreeListNode, "Node type markable references point at")
}

func addArchFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&archName, "arch", format.LP64.Name, "Data model of the target (lp64, ilp32, lp64be)")
}

func addLayoutFlags(cmd *cobra.Command) {
	addArchFlag(cmd)
	cmd.Flags().StringVar(&layoutPath, "layout", "", "YAML or JSON file with additional struct layouts")
}

// pointerRaw parses a reference argument and drops the bits that do not fit a
// pointer of the --arch data model.
func pointerRaw(s string) (uint64, format.Arch, error) {
	arch, err := format.ParseArch(archName)
	if err != nil {
		return 0, format.Arch{}, err
	}
	raw, err := parseReference(s)
	if err != nil {
		return 0, format.Arch{}, err
	}
	if masked := raw & arch.PointerMask(); masked != raw {
		printVerbose("Truncating %#x to %d-byte pointer %#x\n", raw, arch.PointerSize, masked)
		raw = masked
	}
	return raw, arch, nil
}

// loadRegistry builds the builtin layouts for --arch plus any --layout file.
func loadRegistry() (*format.Registry, error) {
	arch, err := format.ParseArch(archName)
	if err != nil {
		return nil, err
	}
	reg := format.NewBuiltinRegistry(arch)
	if layoutPath == "" {
		return reg, nil
	}
	printVerbose("Loading layout: %s\n", layoutPath)
	lf, err := format.LoadLayoutFile(layoutPath)
	if err != nil {
		return nil, err
	}
	if err := lf.Apply(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// openTarget maps every --segment and pairs the image with the registry. The
// caller must Close the returned image.
func openTarget() (*mark.Target, *memory.Image, error) {
	if len(segmentSpecs) == 0 {
		return nil, nil, fmt.Errorf("at least one --segment is required")
	}
	reg, err := loadRegistry()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load layouts: %w", err)
	}
	specs := make([]memory.SegmentSpec, 0, len(segmentSpecs))
	for _, s := range segmentSpecs {
		spec, err := memory.ParseSegmentSpec(s)
		if err != nil {
			return nil, nil, err
		}
		printVerbose("Mapping %s at %#x\n", spec.Path, spec.Base)
		specs = append(specs, spec)
	}
	img, err := memory.Open(specs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open memory image: %w", err)
	}
	return mark.NewTarget(img, reg), img, nil
}
