package domain

// Scope narrows search, count and cache invalidation to a collection or a
// single document. Document scope wins when both identifiers are set.
type Scope struct {
	CollectionID string
	DocumentID   string
}

// IsZero reports whether the scope carries no restriction.
func (s Scope) IsZero() bool { return s.CollectionID == "" && s.DocumentID == "" }

// CacheID returns the identifier cached query results are grouped by:
// the document when set, otherwise the collection, otherwise "0".
func (s Scope) CacheID() string {
	switch {
	case s.DocumentID != "":
		return s.DocumentID
	case s.CollectionID != "":
		return s.CollectionID
	default:
		return "0"
	}
}
