package generated

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitegen/internal/core/domain"
	"github.com/custodia-labs/sitegen/internal/logger"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestNormalise_SelfDescribingReturnedAsIs(t *testing.T) {
	normaliser := New()

	raw := domain.RawFileRecord{Name: "app.js", Content: "let a = 1", Type: "js", Size: 99}

	file, ok := normaliser.Normalise(raw)
	require.True(t, ok)
	assert.Equal(t, domain.CanonicalFile{Name: "app.js", Content: "let a = 1", Type: "js", Size: 99}, file)
}

func TestNormalise_MinimalDerivesTypeAndSize(t *testing.T) {
	normaliser := New()

	raw := domain.RawFileRecord{Name: "components/Nav.TSX", Content: "<nav/>", Object: "file", Locked: true}

	file, ok := normaliser.Normalise(raw)
	require.True(t, ok)
	assert.Equal(t, "components/Nav.TSX", file.Name)
	assert.Equal(t, "<nav/>", file.Content)
	assert.Equal(t, "tsx", file.Type)
	assert.Equal(t, 6, file.Size)
}

func TestNormalise_LegacyWithMetaFile(t *testing.T) {
	normaliser := New()

	raw := domain.RawFileRecord{Lang: "tsx", Meta: &domain.RawFileMeta{File: "app/page.tsx"}, Source: "export default Page"}

	file, ok := normaliser.Normalise(raw)
	require.True(t, ok)
	assert.Equal(t, "app/page.tsx", file.Name)
	assert.Equal(t, "export default Page", file.Content)
	assert.Equal(t, "tsx", file.Type)
	assert.Equal(t, 19, file.Size)
}

func TestNormalise_LegacySynthesisesName(t *testing.T) {
	normaliser := New()

	file, ok := normaliser.Normalise(domain.RawFileRecord{Lang: "css", Source: "body{}"})
	require.True(t, ok)
	assert.Equal(t, "file.css", file.Name)
	assert.Equal(t, "css", file.Type)
}

func TestNormalise_UnknownShape(t *testing.T) {
	normaliser := New()

	tests := []struct {
		name string
		raw  domain.RawFileRecord
	}{
		{"empty", domain.RawFileRecord{}},
		{"name only", domain.RawFileRecord{Name: "a.js"}},
		{"content only", domain.RawFileRecord{Content: "x"}},
		{"lang only", domain.RawFileRecord{Lang: "css"}},
		{"source only", domain.RawFileRecord{Source: "x"}},
		{"empty content", domain.RawFileRecord{Name: "a.js", Content: "", Type: "js", Size: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, ok := normaliser.Normalise(tt.raw)
			assert.False(t, ok)
			assert.Equal(t, domain.CanonicalFile{}, file)
		})
	}
}

func TestNormalise_SizeIsCharacterLength(t *testing.T) {
	normaliser := New()
	content := "héllo 世界"

	records := []domain.RawFileRecord{
		{Name: "a.md", Content: content, Type: "markdown", Size: domain.ContentLength(content)},
		{Name: "a.md", Content: content, Object: "file"},
		{Lang: "md", Source: content},
	}

	for _, raw := range records {
		t.Run(raw.Shape().String(), func(t *testing.T) {
			file, ok := normaliser.Normalise(raw)
			require.True(t, ok)
			assert.Equal(t, 8, file.Size)
			assert.Equal(t, domain.ContentLength(file.Content), file.Size)
		})
	}
}

func TestNormaliseBatch_DropsUnknown(t *testing.T) {
	defer func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	}()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)

	normaliser := New()

	files := normaliser.NormaliseBatch([]domain.RawFileRecord{
		{Name: "a.js", Content: "x", Object: "file"},
		{Name: "broken"},
		{Lang: "css", Source: "b{}"},
	})

	require.Len(t, files, 2)
	assert.Equal(t, "a.js", files[0].Name)
	assert.Equal(t, "file.css", files[1].Name)
	assert.Contains(t, buf.String(), "dropped 1 of 3")
}

func TestNormaliseBatch_Empty(t *testing.T) {
	normaliser := New()
	files := normaliser.NormaliseBatch(nil)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestTypeFor(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"page.tsx", "tsx"},
		{"Button.jsx", "jsx"},
		{"lib/utils.ts", "typescript"},
		{"index.js", "javascript"},
		{"INDEX.JS", "javascript"},
		{"globals.css", "css"},
		{"index.html", "html"},
		{"package.json", "json"},
		{"README.md", "markdown"},
		{"styles.scss", "text"},
		{"Makefile", "text"},
		{"archive.tar.gz", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TypeFor(tt.name))
		})
	}
}

func TestLanguageFor(t *testing.T) {
	assert.Equal(t, "scss", LanguageFor("theme.scss"))
	assert.Equal(t, "javascript", LanguageFor("main.js"))
	assert.Equal(t, "text", LanguageFor("notes.txt"))
}
