package mark

import (
	"fmt"
	"strconv"

	"github.com/joshuapare/markview/pkg/types"
)

// MarkSuffix follows the address in a summary when the reference is marked.
const MarkSuffix = "*"

// Summary renders raw as its unmarked address in hex with a 0x prefix,
// followed by MarkSuffix when bit 0 is set.
//
//	Summary(0x1000) == "0x1000"
//	Summary(0x1001) == "0x1000*"
//	Summary(0)      == "0x0"
func Summary(raw uint64) string {
	marked := raw & markBit
	s := "0x" + strconv.FormatUint(raw-marked, 16)
	if marked != 0 {
		s += MarkSuffix
	}
	return s
}

// SummaryOf renders v's raw bits. A value that cannot be read summarises as
// zero, matching how debuggers report a failed unsigned read.
func SummaryOf(v types.Value) string {
	raw, err := v.Unsigned()
	if err != nil {
		raw = 0
	}
	return Summary(raw)
}

// FormatPointer renders raw as a zero-padded pointer literal for a pointer of
// width bytes. The mark bit is kept.
func FormatPointer(raw uint64, width int) string {
	if width <= 0 {
		width = 8
	}
	return fmt.Sprintf("0x%0*x", width*2, raw)
}
