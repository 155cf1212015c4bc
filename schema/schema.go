// Package schema defines the field schema snapshot stored in the index
// catalog. The catalog core treats it as a serializable value: it is written
// at index creation, persisted alongside the committed segment list, and
// returned verbatim to readers. Interpreting field types is the concern of
// the write pipeline and the query engine.
package schema

import (
	"fmt"
	"maps"
)

// FieldType defines the data type of an indexed field.
type FieldType uint8

const (
	FieldTypeText FieldType = iota
	FieldTypeU64
	FieldTypeI64
	FieldTypeF64
	FieldTypeBytes
)

var fieldTypeNames = map[FieldType]string{
	FieldTypeText:  "text",
	FieldTypeU64:   "u64",
	FieldTypeI64:   "i64",
	FieldTypeF64:   "f64",
	FieldTypeBytes: "bytes",
}

// String returns the string representation of the FieldType.
func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the FieldType as its stable name. The catalog file is
// self-describing, so field types persist as readable strings rather than
// enum ordinals.
func (t FieldType) MarshalText() ([]byte, error) {
	name, ok := fieldTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("schema: unknown field type %d", uint8(t))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a FieldType from its stable name.
func (t *FieldType) UnmarshalText(data []byte) error {
	for ft, name := range fieldTypeNames {
		if name == string(data) {
			*t = ft
			return nil
		}
	}
	return fmt.Errorf("schema: unknown field type %q", string(data))
}

// FieldOptions controls how a field participates in the index.
type FieldOptions struct {
	Indexed bool `json:"indexed"`
	Stored  bool `json:"stored"`
}

// FieldEntry describes a single field.
type FieldEntry struct {
	Type    FieldType    `json:"type"`
	Options FieldOptions `json:"options"`
}

// Schema maps field names to their entries.
type Schema map[string]FieldEntry

// Validate checks that every entry carries a known field type.
func (s Schema) Validate() error {
	for name, entry := range s {
		if _, ok := fieldTypeNames[entry.Type]; !ok {
			return fmt.Errorf("schema: field %q has unknown type %d", name, uint8(entry.Type))
		}
	}
	return nil
}

// Clone returns a copy of the schema. Entries are values, so a shallow map
// copy is a full copy.
func (s Schema) Clone() Schema {
	if s == nil {
		return nil
	}
	return maps.Clone(s)
}
