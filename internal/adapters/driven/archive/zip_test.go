package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitegen/internal/core/domain"
)

func readArchive(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = string(content)
	}
	return out
}

func TestZipExporter_Export(t *testing.T) {
	exporter := NewZipExporter()
	files := []domain.CanonicalFile{
		{Name: "index.html", Content: "<html/>", Type: "html", Size: 7},
		{Name: "src/app.tsx", Content: "export {}", Type: "tsx", Size: 9},
	}

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(&buf, files))

	entries := readArchive(t, buf.Bytes())
	assert.Equal(t, map[string]string{
		"index.html":  "<html/>",
		"src/app.tsx": "export {}",
	}, entries)
}

func TestZipExporter_EntryTimes(t *testing.T) {
	fixed := time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)
	exporter := &ZipExporter{Now: func() time.Time { return fixed }}

	var buf bytes.Buffer
	require.NoError(t, exporter.Export(&buf, []domain.CanonicalFile{{Name: "a.js", Content: "x"}}))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.True(t, zr.File[0].Modified.Equal(fixed))
}

func TestZipExporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewZipExporter().Export(&buf, nil))

	assert.Empty(t, readArchive(t, buf.Bytes()))
}

func TestZipExporter_UnsafeNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewZipExporter().Export(&buf, []domain.CanonicalFile{
		{Name: "../../etc/passwd", Content: "x"},
		{Name: "/abs/path.txt", Content: "y"},
		{Name: "..", Content: "z"},
	}))

	entries := readArchive(t, buf.Bytes())
	assert.Equal(t, map[string]string{
		"etc/passwd":   "x",
		"abs/path.txt": "y",
	}, entries)
}

func TestEntryName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"index.html", "index.html"},
		{"app/page.tsx", "app/page.tsx"},
		{"./a/../b.js", "b.js"},
		{`win\style.css`, "win/style.css"},
		{"../x", "x"},
		{"", ""},
		{"/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, EntryName(tt.in))
		})
	}
}

func TestDefaultFileName(t *testing.T) {
	assert.Equal(t, "project-2026-10-17.zip", DefaultFileName(time.Date(2026, 10, 17, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, ".zip", NewZipExporter().Extension())
}
