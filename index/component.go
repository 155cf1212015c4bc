package index

// Component denotes one of the logical file kinds a segment owns.
type Component uint8

const (
	// ComponentInfo holds per-segment bookkeeping (e.g. document count).
	ComponentInfo Component = iota
	// ComponentPostings holds the inverted lists.
	ComponentPostings
	// ComponentTerms holds the term dictionary.
	ComponentTerms
	// ComponentStore holds the stored document fields.
	ComponentStore
)

// Suffix returns the filename suffix of the component.
func (c Component) Suffix() string {
	switch c {
	case ComponentInfo:
		return ".info"
	case ComponentPostings:
		return ".idx"
	case ComponentTerms:
		return ".term"
	case ComponentStore:
		return ".store"
	default:
		return ".unknown"
	}
}

func (c Component) String() string {
	switch c {
	case ComponentInfo:
		return "info"
	case ComponentPostings:
		return "postings"
	case ComponentTerms:
		return "terms"
	case ComponentStore:
		return "store"
	default:
		return "unknown"
	}
}
