package driven

import "github.com/custodia-labs/sitegen/internal/core/domain"

// FileNormaliser transforms raw file records into canonical files.
// Records that match no known shape are dropped, never reported as errors.
type FileNormaliser interface {
	// Normalise converts one record. The boolean is false when the
	// record matches no known shape.
	Normalise(raw domain.RawFileRecord) (domain.CanonicalFile, bool)

	// NormaliseBatch converts a batch in order, skipping unknown shapes.
	NormaliseBatch(batch []domain.RawFileRecord) []domain.CanonicalFile
}
