// Package mmfile maps segment files read-only into memory. Unix systems use
// mmap; other platforms read the file into a private buffer.
package mmfile
