//go:build windows

package imagetree

import (
	"os"
	"syscall"

	"golang.org/x/sys/windows"
)

// isSystemDir reports whether info carries the system attribute.
func isSystemDir(info os.FileInfo) bool {
	data, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return false
	}
	return data.FileAttributes&windows.FILE_ATTRIBUTE_SYSTEM != 0
}
