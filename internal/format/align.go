package format

// AlignUp returns n aligned up to the next multiple of a. Alignments below 2
// leave n unchanged.
//
// Example:
//
//	AlignUp(1, 8)  = 8
//	AlignUp(8, 8)  = 8
//	AlignUp(9, 8)  = 16
//	AlignUp(3, 1)  = 3
func AlignUp(n, a int) int {
	if a <= 1 {
		return n
	}
	return (n + a - 1) / a * a
}
