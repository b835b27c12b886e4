package gallery

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/tacogips/swag/internal/debug"
)

// Writer writes generated files.
type Writer interface {
	// WriteFile writes content to path, creating parent directories.
	WriteFile(path string, content []byte) error

	// CreateDir creates a directory and any necessary parent directories.
	CreateDir(path string) error

	// RemoveAll deletes path and everything below it.
	RemoveAll(path string) error

	// Exists checks if a file or directory exists at the given path.
	Exists(path string) bool
}

// FileWriter implements Writer on an afero filesystem.
type FileWriter struct {
	fs afero.Fs
}

// NewFileWriter creates a new FileWriter.
func NewFileWriter(fs afero.Fs) Writer {
	return &FileWriter{fs: fs}
}

// WriteFile writes content to a file with 0644 permissions.
// Writes atomically using a temporary file and rename, so a cancelled run
// never leaves a half-written manifest behind.
func (w *FileWriter) WriteFile(path string, content []byte) error {
	debug.Debug("[gallery] Writing file: %s (size: %d bytes)", path, len(content))

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := w.CreateDir(dir); err != nil {
			return err
		}
	}

	tempFile := path + ".tmp"
	f, err := w.fs.OpenFile(tempFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return newGeneratorError(WriteFailed, "failed to create temporary file", path, err)
	}

	_, err = f.Write(content)
	closeErr := f.Close()

	if err != nil {
		_ = w.fs.Remove(tempFile)
		return newGeneratorError(WriteFailed, "failed to write file content", path, err)
	}
	if closeErr != nil {
		_ = w.fs.Remove(tempFile)
		return newGeneratorError(WriteFailed, "failed to close file", path, closeErr)
	}

	if err := w.fs.Rename(tempFile, path); err != nil {
		_ = w.fs.Remove(tempFile)
		return newGeneratorError(WriteFailed, "failed to rename temporary file", path, err)
	}

	return nil
}

// CreateDir creates a directory and any necessary parent directories.
func (w *FileWriter) CreateDir(path string) error {
	if err := w.fs.MkdirAll(path, 0755); err != nil {
		return newGeneratorError(WriteFailed, "failed to create directory", path, err)
	}
	return nil
}

// RemoveAll deletes path recursively. A missing path is not an error.
func (w *FileWriter) RemoveAll(path string) error {
	debug.Debug("[gallery] Removing: %s", path)
	if err := w.fs.RemoveAll(path); err != nil {
		return newGeneratorError(WriteFailed, "failed to remove directory", path, err)
	}
	return nil
}

// Exists checks if a file or directory exists at the given path.
func (w *FileWriter) Exists(path string) bool {
	_, err := w.fs.Stat(path)
	return err == nil
}
