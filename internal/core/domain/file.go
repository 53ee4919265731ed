package domain

import (
	"encoding/json"
	"unicode/utf8"
)

// RawFileShape identifies which of the upstream file layouts a record uses.
type RawFileShape int

const (
	// ShapeUnknown matches no known layout. Such records are dropped.
	ShapeUnknown RawFileShape = iota

	// ShapeSelfDescribing carries name, content, type and size.
	ShapeSelfDescribing

	// ShapeLegacy carries lang, source and optionally meta.file.
	ShapeLegacy

	// ShapeMinimal carries name and content only; type and size are derived.
	ShapeMinimal
)

// String returns the string representation.
func (s RawFileShape) String() string {
	switch s {
	case ShapeSelfDescribing:
		return "self-describing"
	case ShapeLegacy:
		return "legacy"
	case ShapeMinimal:
		return "minimal"
	default:
		return "unknown"
	}
}

// RawFileMeta holds the optional metadata of a legacy record.
type RawFileMeta struct {
	File string `json:"file,omitempty"`
}

// RawFileRecord is a file as returned by the generation service.
// The service has emitted several layouts over time; every field any of
// them uses is present here and Shape reports which layout applies.
type RawFileRecord struct {
	Name    string       `json:"name,omitempty"`
	Content string       `json:"content,omitempty"`
	Type    string       `json:"type,omitempty"`
	Size    int          `json:"size,omitempty"`
	Lang    string       `json:"lang,omitempty"`
	Meta    *RawFileMeta `json:"meta,omitempty"`
	Source  string       `json:"source,omitempty"`
	Object  string       `json:"object,omitempty"`
	Locked  bool         `json:"locked,omitempty"`
}

// Shape derives the layout discriminator from which fields are present.
// Empty strings and zero sizes count as absent.
func (r RawFileRecord) Shape() RawFileShape {
	switch {
	case r.Name != "" && r.Content != "":
		if r.Type != "" && r.Size > 0 {
			return ShapeSelfDescribing
		}
		return ShapeMinimal
	case r.Lang != "" && r.Source != "":
		return ShapeLegacy
	default:
		return ShapeUnknown
	}
}

// MetaFile returns meta.file, or "" when the record has no metadata.
func (r RawFileRecord) MetaFile() string {
	if r.Meta == nil {
		return ""
	}
	return r.Meta.File
}

// CanonicalFile is the normalised representation used for display and download.
type CanonicalFile struct {
	// Name is unique within a FileCollection.
	Name string `json:"name"`

	// Content is the full file text.
	Content string `json:"content"`

	// Type is a normalised language or extension tag.
	Type string `json:"type"`

	// Size is the character length of Content.
	Size int `json:"size"`
}

// IsValid reports whether every field is populated.
func (f CanonicalFile) IsValid() bool {
	return f.Name != "" && f.Content != "" && f.Type != "" && f.Size > 0
}

// ContentLength returns the character length of s, the unit Size is measured in.
func ContentLength(s string) int {
	return utf8.RuneCountInString(s)
}

// FileCollection is an ordered mapping from file name to CanonicalFile.
// Names are unique. Order is first-seen insertion order; updates keep
// the original position.
//
// The zero value is an empty collection ready to use.
type FileCollection struct {
	files []CanonicalFile
	index map[string]int
}

// NewFileCollection builds a collection from files, in order.
// A repeated name updates the earlier entry in place.
func NewFileCollection(files []CanonicalFile) FileCollection {
	var c FileCollection
	for _, f := range files {
		c.Upsert(f)
	}
	return c
}

// Len returns the number of files.
func (c *FileCollection) Len() int {
	return len(c.files)
}

// Files returns a copy of the files in collection order.
func (c *FileCollection) Files() []CanonicalFile {
	out := make([]CanonicalFile, len(c.files))
	copy(out, c.files)
	return out
}

// Names returns the file names in collection order.
func (c *FileCollection) Names() []string {
	names := make([]string, len(c.files))
	for i, f := range c.files {
		names[i] = f.Name
	}
	return names
}

// Get returns the file with the given name.
func (c *FileCollection) Get(name string) (CanonicalFile, bool) {
	i, ok := c.lookup(name)
	if !ok {
		return CanonicalFile{}, false
	}
	return c.files[i], true
}

// Has reports whether a file with the given name exists.
func (c *FileCollection) Has(name string) bool {
	_, ok := c.lookup(name)
	return ok
}

// Upsert updates the content, type and size of an existing file in place,
// or appends f when its name is new. It reports whether f was appended.
func (c *FileCollection) Upsert(f CanonicalFile) bool {
	if i, ok := c.lookup(f.Name); ok {
		existing := &c.files[i]
		existing.Content = f.Content
		existing.Size = f.Size
		existing.Type = f.Type
		return false
	}
	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.index[f.Name] = len(c.files)
	c.files = append(c.files, f)
	return true
}

// Valid returns the files with every field populated, in collection order.
// Incomplete entries stay in the collection until overwritten.
func (c *FileCollection) Valid() []CanonicalFile {
	out := make([]CanonicalFile, 0, len(c.files))
	for _, f := range c.files {
		if f.IsValid() {
			out = append(out, f)
		}
	}
	return out
}

// Clear removes every file.
func (c *FileCollection) Clear() {
	c.files = nil
	c.index = nil
}

// Clone returns an independent copy.
func (c *FileCollection) Clone() FileCollection {
	return NewFileCollection(c.files)
}

func (c *FileCollection) lookup(name string) (int, bool) {
	if c.index == nil {
		return 0, false
	}
	i, ok := c.index[name]
	return i, ok
}

// MarshalJSON encodes the collection as an array in collection order.
func (c FileCollection) MarshalJSON() ([]byte, error) {
	if c.files == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.files)
}

// UnmarshalJSON decodes an array of files.
func (c *FileCollection) UnmarshalJSON(data []byte) error {
	var files []CanonicalFile
	if err := json.Unmarshal(data, &files); err != nil {
		return err
	}
	*c = NewFileCollection(files)
	return nil
}

// ReconciliationState is the input and output of file reconciliation for one
// conversation. It is passed explicitly between turns.
type ReconciliationState struct {
	// Previous holds the names of the immediately preceding normalised batch.
	Previous []string `json:"previous"`

	// Batches counts the batches recorded so far. Zero means no prior state.
	Batches int `json:"batches"`

	// Files is the current canonical file collection.
	Files FileCollection `json:"files"`
}

// Clone returns an independent copy of the state.
func (s ReconciliationState) Clone() ReconciliationState {
	out := ReconciliationState{
		Batches: s.Batches,
		Files:   s.Files.Clone(),
	}
	if s.Previous != nil {
		out.Previous = append([]string(nil), s.Previous...)
	}
	return out
}
