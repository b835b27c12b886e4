//go:build !windows

package imagetree

import "os"

// isSystemDir reports whether info carries the system attribute. Only
// Windows has one.
func isSystemDir(info os.FileInfo) bool {
	return false
}
