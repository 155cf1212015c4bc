package index

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// SegmentID is the immutable 128-bit random identity of a segment.
//
// Identities are globally unique with overwhelming probability for the life
// of an index; no allocator or coordination is involved. The value is
// comparable and usable as a map key.
type SegmentID [16]byte

// NewSegmentID generates a fresh random segment identity.
func NewSegmentID() SegmentID {
	return SegmentID(uuid.New())
}

// String returns the fixed-width lowercase hex encoding of the identity.
// It is used directly as the filename stem of the segment's component files.
func (id SegmentID) String() string {
	return hex.EncodeToString(id[:])
}

// ParseSegmentID is the exact inverse of String.
func ParseSegmentID(s string) (SegmentID, error) {
	var id SegmentID
	if len(s) != hex.EncodedLen(len(id)) {
		return SegmentID{}, fmt.Errorf("index: segment id %q: want %d hex chars", s, hex.EncodedLen(len(id)))
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return SegmentID{}, fmt.Errorf("index: segment id %q: %w", s, err)
	}
	return id, nil
}

// MarshalText encodes the identity as its hex form for catalog persistence.
func (id SegmentID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText decodes the hex form.
func (id *SegmentID) UnmarshalText(data []byte) error {
	parsed, err := ParseSegmentID(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
