// Package codec centralizes the encoding of the index catalog.
//
// The catalog file is the commit point of the index: if you change codecs,
// catalogs written by older codecs may no longer decode. Both built-in
// codecs produce standard JSON, so they are interchangeable for the catalog
// format; the choice only affects encode/decode performance.
package codec

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}
