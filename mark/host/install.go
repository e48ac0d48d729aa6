package host

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/joshuapare/markview/internal/format"
	"github.com/joshuapare/markview/mark"
	"github.com/joshuapare/markview/pkg/types"
)

// Install binds the markable_ptr_t tag: pointer display format, the mark
// summary, and the mark synthetic provider.
func Install(s *Session) error {
	return errors.Join(
		s.AddFormat(format.MarkableType, FormatPointer),
		s.AddSummary(format.MarkableType, mark.SummaryOf),
		s.AddSynthetic(format.MarkableType, func(v types.Value, r *mark.Resolver) SyntheticProvider {
			return mark.NewProvider(v, r)
		}),
	)
}

// NewDefaultSession returns a session over tg with Install applied.
func NewDefaultSession(tg *mark.Target, cfg Config) (*Session, error) {
	s := NewSession(tg, cfg)
	if err := Install(s); err != nil {
		return nil, fmt.Errorf("host: install: %w", err)
	}
	return s, nil
}

// Display renders v's own value text according to its bound format. Values
// that cannot be read render as "<unavailable>"; structs render as "{...}".
func (s *Session) Display(v types.Value) string {
	mv, isMark := v.(*mark.Value)
	if isMark {
		switch mv.Type().Kind {
		case format.KindStruct:
			return "{...}"
		case format.KindChars:
			text, err := mv.Text()
			if err != nil {
				return "<unavailable>"
			}
			return strconv.Quote(text)
		}
	}

	raw, err := v.Unsigned()
	if err != nil {
		return "<unavailable>"
	}
	width := s.target.Arch().PointerSize
	f := s.Format(v)
	if isMark && f == FormatDefault {
		switch mv.Type().Kind {
		case format.KindPointer, format.KindMarkable:
			f = FormatPointer
		case format.KindInt:
			if i, err := mv.Signed(); err == nil {
				return strconv.FormatInt(i, 10)
			}
		}
	}
	switch f {
	case FormatPointer:
		return mark.FormatPointer(raw, width)
	case FormatHex:
		return "0x" + strconv.FormatUint(raw, 16)
	default:
		return strconv.FormatUint(raw, 10)
	}
}
