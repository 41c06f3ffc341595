// Package ranking talks to the relevance-ranking collaborator that orders an
// entity's properties by how interesting they are.
package ranking

import (
	"context"
	"strings"

	"github.com/agenthands/kgquiz/internal/resources"
)

// Ranker returns up to top property identifiers relevant to the entity labelled
// entityLabel, most relevant first. Failures wrap common.ErrRankingService.
type Ranker interface {
	TopProperties(ctx context.Context, entityLabel string, top int) ([]string, error)
}

// Filter drops ranked identifiers that can never become a question: blacklisted
// properties and namespaces known to lack range/label metadata.
type Filter struct {
	Prefixes          *resources.PrefixTable
	Blacklist         resources.Blacklist
	ExcludeNamespaces []string
}

// Apply normalises ids to absolute IRIs, removes filtered and duplicate ids and
// keeps the ranked order.
func (f Filter) Apply(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if f.Prefixes != nil {
			id = f.Prefixes.Normalize(id)
		}
		if id == "" || seen[id] || f.Blacklist.Contains(id) || f.excluded(id) {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (f Filter) excluded(id string) bool {
	for _, ns := range f.ExcludeNamespaces {
		if strings.HasPrefix(id, ns) {
			return true
		}
	}
	return false
}
