package classify

import (
	"github.com/elijahadejumo/DocStability/schema"
)

// DefaultDominantThreshold is the doc share at which a mixed commit counts as doc-dominant.
const DefaultDominantThreshold = 0.5

// ClassifyCommit sorts a commit's files into health docs and other work and assigns its category.
// Paths are counted once after normalization. Excluded paths count toward neither side.
func (r *Rules) ClassifyCommit(files []string, threshold float64) schema.Classification {
	var c schema.Classification
	seen := make(map[string]struct{}, len(files))
	for _, f := range files {
		p := NormalizePath(f)
		if p == "" || r.IsExcluded(p) {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		if r.IsIncluded(p) {
			c.HealthFiles = append(c.HealthFiles, p)
		} else {
			c.OtherFiles = append(c.OtherFiles, p)
		}
	}

	switch {
	case len(c.HealthFiles) == 0:
		c.Category = schema.NoTouch
	case len(c.OtherFiles) == 0:
		c.Category = schema.DocOnly
	case c.DocShare() >= threshold:
		c.Category = schema.DocDominant
	default:
		c.Category = schema.DocNonDominant
	}
	return c
}
