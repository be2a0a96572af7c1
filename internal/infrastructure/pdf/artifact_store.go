package pdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// FileArtifactStore writes per-house documents to disk and inspects
// existing ones for the coarse idempotency check.
type FileArtifactStore struct{}

// NewFileArtifactStore builds the store.
func NewFileArtifactStore() *FileArtifactStore { return &FileArtifactStore{} }

// pageObjectRe matches a page object marker. The negative class keeps the
// page-tree node (/Type /Pages) out of the count.
var pageObjectRe = regexp.MustCompile(`/Type\s*/Page[^s]`)

// PageCount reads the artifact and counts its pages by scanning the PDF
// object markers. There is no PDF reader in this stack; a marker scan is
// enough for a count-only check. Returns (0, false, nil) when the file
// does not exist.
func (s *FileArtifactStore) PageCount(path string) (int, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("artifact: read %s: %w", path, err)
	}
	return len(pageObjectRe.FindAll(data, -1)), true, nil
}

// Write stores the assembled document, creating the output root if needed.
func (s *FileArtifactStore) Write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("artifact: create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("artifact: write %s: %w", path, err)
	}
	return nil
}
