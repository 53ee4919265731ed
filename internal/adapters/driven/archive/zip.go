// Package archive packages canonical files for download.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/custodia-labs/sitegen/internal/core/domain"
	"github.com/custodia-labs/sitegen/internal/core/ports/driven"
)

// Ensure ZipExporter implements the interface.
var _ driven.ProjectExporter = (*ZipExporter)(nil)

// ZipExporter writes files as a zip archive, one entry per file.
type ZipExporter struct {
	// Now stamps entry modification times. Defaults to time.Now.
	Now func() time.Time
}

// NewZipExporter creates a zip exporter.
func NewZipExporter() *ZipExporter {
	return &ZipExporter{Now: time.Now}
}

// Export writes files to w as a zip archive. Entry names are cleaned so no
// entry escapes the archive root; files whose names clean to nothing are
// skipped.
func (e *ZipExporter) Export(w io.Writer, files []domain.CanonicalFile) error {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	modified := now()

	zw := zip.NewWriter(w)
	for _, f := range files {
		name := EntryName(f.Name)
		if name == "" {
			continue
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return fmt.Errorf("creating entry %s: %w", name, err)
		}
		if _, err := io.WriteString(fw, f.Content); err != nil {
			return fmt.Errorf("writing entry %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}

// Extension returns ".zip".
func (e *ZipExporter) Extension() string {
	return ".zip"
}

// EntryName converts a file name into a safe relative archive path.
func EntryName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	cleaned := path.Clean("/" + name)
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "." {
		return ""
	}
	return cleaned
}

// DefaultFileName returns the download name for an export made at t,
// e.g. project-2026-10-17.zip.
func DefaultFileName(t time.Time) string {
	return "project-" + t.Format("2006-01-02") + ".zip"
}
