//go:build !unix

package mmfile

import (
	"fmt"
	"os"
)

// Map reads the segment file at path into a private buffer on platforms
// without the unix mmap interface. The cleanup function has nothing to release.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("mmfile: read %s: %w", path, err)
	}
	return data, func() error { return nil }, nil
}
