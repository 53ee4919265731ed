// Package generated normalises the file records returned by the website
// generation service into canonical files.
package generated

import (
	"path"
	"strings"

	"github.com/custodia-labs/sitegen/internal/core/domain"
	"github.com/custodia-labs/sitegen/internal/core/ports/driven"
	"github.com/custodia-labs/sitegen/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.FileNormaliser = (*Normaliser)(nil)

// DefaultType is used when a file extension is not in the type table.
const DefaultType = "text"

// typesByExtension maps lowercased file extensions to normalised types.
var typesByExtension = map[string]string{
	"tsx":  "tsx",
	"jsx":  "jsx",
	"ts":   "typescript",
	"js":   "javascript",
	"css":  "css",
	"html": "html",
	"json": "json",
	"md":   "markdown",
}

// languagesByExtension extends the type table with display-only languages.
var languagesByExtension = map[string]string{
	"scss": "scss",
}

// Normaliser handles every file shape the generation service emits.
type Normaliser struct{}

// New creates a new generated-file normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise converts a raw record to a canonical file.
// Returns false when the record matches no known shape.
func (n *Normaliser) Normalise(raw domain.RawFileRecord) (domain.CanonicalFile, bool) {
	switch raw.Shape() {
	case domain.ShapeSelfDescribing:
		return domain.CanonicalFile{
			Name:    raw.Name,
			Content: raw.Content,
			Type:    raw.Type,
			Size:    raw.Size,
		}, true
	case domain.ShapeMinimal:
		return domain.CanonicalFile{
			Name:    raw.Name,
			Content: raw.Content,
			Type:    TypeFor(raw.Name),
			Size:    domain.ContentLength(raw.Content),
		}, true
	case domain.ShapeLegacy:
		name := raw.MetaFile()
		if name == "" {
			name = "file." + raw.Lang
		}
		return domain.CanonicalFile{
			Name:    name,
			Content: raw.Source,
			Type:    raw.Lang,
			Size:    domain.ContentLength(raw.Source),
		}, true
	case domain.ShapeUnknown:
		return domain.CanonicalFile{}, false
	default:
		return domain.CanonicalFile{}, false
	}
}

// NormaliseBatch converts a batch in order, dropping unknown shapes.
func (n *Normaliser) NormaliseBatch(batch []domain.RawFileRecord) []domain.CanonicalFile {
	files := make([]domain.CanonicalFile, 0, len(batch))
	dropped := 0
	for _, raw := range batch {
		f, ok := n.Normalise(raw)
		if !ok {
			dropped++
			continue
		}
		files = append(files, f)
	}
	if dropped > 0 {
		logger.Debug("normaliser: dropped %d of %d file records with unknown shape", dropped, len(batch))
	}
	return files
}

// TypeFor returns the normalised type for a file name, derived from its
// lowercased extension.
func TypeFor(name string) string {
	if t, ok := typesByExtension[extension(name)]; ok {
		return t
	}
	return DefaultType
}

// LanguageFor returns the syntax-highlighting language for a file name.
// It recognises a few display-only extensions on top of TypeFor.
func LanguageFor(name string) string {
	if l, ok := languagesByExtension[extension(name)]; ok {
		return l
	}
	return TypeFor(name)
}

// extension returns the lowercased text after the last dot, or the whole
// base name when there is no dot.
func extension(name string) string {
	base := path.Base(name)
	if i := strings.LastIndex(base, "."); i >= 0 {
		base = base[i+1:]
	}
	return strings.ToLower(base)
}
