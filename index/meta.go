package index

import (
	"errors"
	"fmt"
	"slices"

	"github.com/tessera-search/tessera/codec"
	"github.com/tessera-search/tessera/schema"
)

// MetaFileName is the fixed name of the catalog file at the directory root.
const MetaFileName = "meta.json"

// metaFormatVersion is the current catalog format version. Decoding rejects
// any other value.
const metaFormatVersion = 1

// ErrInvalidMeta is returned when the catalog file does not decode as a
// valid catalog document. It satisfies errors.Is on every decode failure,
// so callers can distinguish "corrupt index" from "no index here"
// (directory.ErrNotFound).
var ErrInvalidMeta = errors.New("invalid meta file")

// IndexMeta is the catalog: the serialized record of the committed segment
// list plus the schema snapshot. It is the only persisted state of the
// index core. An identity appears in Segments iff it has been published;
// component files may exist in storage for identities that never appear
// here, and such segments are invisible to readers.
type IndexMeta struct {
	Version  int           `json:"version"`
	Segments []SegmentID   `json:"segments"`
	Schema   schema.Schema `json:"schema"`
}

func newIndexMeta(s schema.Schema) IndexMeta {
	return IndexMeta{
		Version:  metaFormatVersion,
		Segments: []SegmentID{},
		Schema:   s.Clone(),
	}
}

func (m IndexMeta) clone() IndexMeta {
	return IndexMeta{
		Version:  m.Version,
		Segments: slices.Clone(m.Segments),
		Schema:   m.Schema.Clone(),
	}
}

func encodeMeta(c codec.Codec, m IndexMeta) ([]byte, error) {
	data, err := c.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("index: encode meta: %w", err)
	}
	return data, nil
}

func decodeMeta(c codec.Codec, data []byte) (IndexMeta, error) {
	var m IndexMeta
	if err := c.Unmarshal(data, &m); err != nil {
		return IndexMeta{}, fmt.Errorf("index: %w: %w", ErrInvalidMeta, err)
	}
	if m.Version != metaFormatVersion {
		return IndexMeta{}, fmt.Errorf("index: %w: unsupported version %d (expected %d)", ErrInvalidMeta, m.Version, metaFormatVersion)
	}
	if err := m.Schema.Validate(); err != nil {
		return IndexMeta{}, fmt.Errorf("index: %w: %w", ErrInvalidMeta, err)
	}
	if m.Segments == nil {
		m.Segments = []SegmentID{}
	}
	return m, nil
}
