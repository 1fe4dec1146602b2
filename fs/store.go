package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/texmeta"
)

// Ensure FileStore implements texmeta.DocumentWriter at compile time.
var _ texmeta.DocumentWriter = (*FileStore)(nil)

// MarkerFile is written into every committed export. Commit only replaces an
// existing non-empty directory that carries it, unless Force is set.
const MarkerFile = ".texmeta-export"

// FileStore implements texmeta.DocumentWriter with atomic update semantics.
// Documents are written to a temporary directory, then moved atomically on
// Commit.
type FileStore struct {
	baseDir   string
	name      string
	formatter Formatter

	// Force allows Commit to replace a directory not written by an export.
	Force bool
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string, formatter Formatter) *FileStore {
	return &FileStore{
		baseDir:   baseDir,
		name:      name,
		formatter: formatter,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// WriteDocument formats doc and saves it under the temporary directory.
func (s *FileStore) WriteDocument(ctx context.Context, doc *texmeta.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath, err := DocumentPath(doc, s.formatter.Extension())
	if err != nil {
		return err
	}

	content, err := s.formatter.Format(doc)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)

	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, content, 0644)
}

// Commit replaces the output directory with the temporary one.
func (s *FileStore) Commit() error {
	// An export with no documents still produces an empty directory
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(s.tempDir(), MarkerFile), nil, 0644); err != nil {
		return err
	}

	if !s.Force {
		if err := checkReplaceable(s.finalDir()); err != nil {
			return err
		}
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	// Atomically rename temp to final
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything written since the store was created.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// checkReplaceable returns ECONFLICT unless dir is missing, empty, or a
// previous export.
func checkReplaceable(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return texmeta.Errorf(texmeta.ECONFLICT, "refusing to replace %s: %v", dir, err)
	}
	if len(entries) == 0 {
		return nil
	}
	if _, err := os.Stat(filepath.Join(dir, MarkerFile)); err == nil {
		return nil
	}
	return texmeta.Errorf(texmeta.ECONFLICT, "refusing to replace %s: directory was not written by texmeta export", dir)
}
