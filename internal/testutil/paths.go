package testutil

// Fixture addresses used across package tests. The heap segment holds three
// lock-free list nodes laid out back to back (LP64 node size is 0x20).
const (
	// HeapBase is where the fixture heap segment is loaded.
	HeapBase = 0x1000
	// HeapSize is the length of the fixture heap segment.
	HeapSize = 0x100

	NodeA = 0x1000 // key 10, next = NodeB with the mark set
	NodeB = 0x1020 // key 20, next = NodeC
	NodeC = 0x1040 // key 30, next = NULL

	// ListHeader is where the SPCLockFreeList header lives in the heap segment.
	ListHeader = 0x1080

	// Unmapped is an even address outside every fixture segment.
	Unmapped = 0x9000
)
