package domain

// Relevance tier defaults, tuned for cosine similarity of normalized text
// embeddings. Adjust per embedding model through configuration.
const (
	DefaultPrimaryThreshold   = 0.4
	DefaultSecondaryThreshold = 0.3
	DefaultMinResults         = 2
)

// RelevancePolicy is the two-tier score filter applied over raw-scored
// candidates. Results at or above Primary are always kept; when fewer than
// MinResults pass, candidates at or above Secondary top the list up to the
// requested limit.
type RelevancePolicy struct {
	Primary    float64
	Secondary  float64
	MinResults int
}

// DefaultRelevancePolicy returns the policy with default tier values.
func DefaultRelevancePolicy() RelevancePolicy {
	return RelevancePolicy{
		Primary:    DefaultPrimaryThreshold,
		Secondary:  DefaultSecondaryThreshold,
		MinResults: DefaultMinResults,
	}
}

// Apply filters candidates by the two-tier rule, preserving input order.
// Candidates are expected sorted by descending score.
func (p RelevancePolicy) Apply(candidates []SearchResult, limit int) []SearchResult {
	relevant := make([]SearchResult, 0, len(candidates))
	for _, c := range candidates {
		if c.Score >= p.Primary {
			relevant = append(relevant, c)
		}
	}
	if len(relevant) >= p.MinResults {
		return relevant
	}

	for _, c := range candidates {
		if limit > 0 && len(relevant) >= limit {
			break
		}
		if c.Score >= p.Secondary && c.Score < p.Primary {
			relevant = append(relevant, c)
		}
	}
	return relevant
}
