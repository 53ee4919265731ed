package driven

import (
	"io"

	"github.com/custodia-labs/sitegen/internal/core/domain"
)

// ProjectExporter packages canonical files for download.
type ProjectExporter interface {
	// Export writes files to w in the exporter's archive format.
	Export(w io.Writer, files []domain.CanonicalFile) error

	// Extension returns the archive file extension, including the dot.
	Extension() string
}
