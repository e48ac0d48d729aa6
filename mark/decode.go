package mark

// markBit is the tag bit of a markable reference.
const markBit uint64 = 1

// NullMarked is a null reference with the mark set.
const NullMarked uint64 = markBit

// Decoded is a markable reference split into its address and its mark.
type Decoded struct {
	Address uint64
	Marked  bool
}

// Decode splits raw into the address with bit 0 cleared and the mark.
// It is total: every raw value, including 0, decodes.
func Decode(raw uint64) Decoded {
	return Decoded{
		Address: raw &^ markBit,
		Marked:  raw&markBit != 0,
	}
}

// Raw re-encodes d.
func (d Decoded) Raw() uint64 {
	return Encode(d.Address, d.Marked)
}

// IsNull reports whether d points nowhere, marked or not.
func (d Decoded) IsNull() bool {
	return d.Address == 0
}

// Encode returns addr with bit 0 set when marked and cleared otherwise.
func Encode(addr uint64, marked bool) uint64 {
	if marked {
		return addr | markBit
	}
	return addr &^ markBit
}

// IsMarked reports whether bit 0 of raw is set.
func IsMarked(raw uint64) bool {
	return raw&markBit != 0
}

// Unmark returns raw with bit 0 cleared: the plain node address.
func Unmark(raw uint64) uint64 {
	return raw &^ markBit
}
