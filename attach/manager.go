/*
Package attach manages supporting documents uploaded alongside claims.

PURPOSE:
  Validates a source document (extension and size), copies it into the
  application's managed storage directory under a freshly generated unique
  name, and later opens stored documents with the platform's default viewer.

CONSTRAINTS:
  - Extension must be one of .pdf, .doc, .docx, .xls, .xlsx (case-insensitive)
  - Size must not exceed 5 MiB

NAMING:
  Stored files are named <uuid><original extension>. The original base name is
  kept separately for display. A name collision would silently overwrite, but
  uuid naming makes that practically impossible.
*/
package attach

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MaxFileBytes is the largest accepted document size.
const MaxFileBytes = 5 * 1024 * 1024

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
}

// Manager copies documents into a managed storage directory.
type Manager struct {
	dir string
	log zerolog.Logger
}

// NewManager creates the managed storage directory if needed.
func NewManager(dir string, log zerolog.Logger) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create managed storage: %w", err)
	}
	return &Manager{dir: dir, log: log}, nil
}

// Dir returns the managed storage directory.
func (m *Manager) Dir() string { return m.dir }

// Store validates sourcePath and copies it into managed storage.
// Returns the managed path and the original base name for display.
func (m *Manager) Store(sourcePath string) (storedPath, originalName string, err error) {
	ext := strings.ToLower(filepath.Ext(sourcePath))
	if !allowedExtensions[ext] {
		return "", "", &InvalidFileTypeError{Extension: ext}
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		return "", "", fmt.Errorf("stat source document: %w", err)
	}
	if info.Size() > MaxFileBytes {
		return "", "", &FileTooLargeError{Size: info.Size(), Limit: MaxFileBytes}
	}

	storedPath = filepath.Join(m.dir, uuid.NewString()+ext)
	if err := copyFile(sourcePath, storedPath); err != nil {
		return "", "", fmt.Errorf("copy document: %w", err)
	}

	m.log.Debug().
		Str("source", sourcePath).
		Str("stored", storedPath).
		Int64("bytes", info.Size()).
		Msg("document stored")
	return storedPath, filepath.Base(sourcePath), nil
}

// Open hands the stored document to the platform's default viewer.
// Fails with ErrFileNotFound when the document no longer exists. A viewer
// launch failure is returned for display and is never fatal to the process.
func (m *Manager) Open(storedPath string) error {
	if _, err := os.Stat(storedPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrFileNotFound
		}
		return fmt.Errorf("stat stored document: %w", err)
	}
	if err := openerCommand(storedPath).Start(); err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	return nil
}

func openerCommand(path string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return exec.Command("xdg-open", path)
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	// os.Create truncates an existing file: collisions overwrite silently.
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
