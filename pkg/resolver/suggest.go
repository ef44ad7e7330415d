package resolver

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

type suggestion struct {
	name     string
	distance int
	index    int
}

// Suggest ranks names that look close to query. It is meant for error
// messages only and never feeds back into resolution. At most limit names are
// returned, closest first.
func Suggest(query string, names []string, limit int) []string {
	q := Slug(query)
	if q == "" || limit <= 0 {
		return nil
	}

	slugs := make([]string, len(names))
	for i, name := range names {
		slugs[i] = Slug(name)
	}

	found := make(map[int]suggestion)
	keep := func(s suggestion) {
		if prev, ok := found[s.index]; !ok || s.distance < prev.distance {
			found[s.index] = s
		}
	}

	// Query characters appearing in order inside a name ("tdo" in "To Do").
	ranks := fuzzy.RankFindNormalizedFold(q, slugs)
	sort.Sort(ranks)
	for _, rank := range ranks {
		keep(suggestion{name: names[rank.OriginalIndex], distance: rank.Distance, index: rank.OriginalIndex})
	}

	// Plain typos ("Doen" for "Done").
	threshold := max(2, len(q)/3)
	for i, slug := range slugs {
		if slug == "" {
			continue
		}
		if d := fuzzy.LevenshteinDistance(q, slug); d <= threshold {
			keep(suggestion{name: names[i], distance: d, index: i})
		}
	}

	out := make([]suggestion, 0, len(found))
	for _, s := range found {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].distance != out[j].distance {
			return out[i].distance < out[j].distance
		}
		return out[i].index < out[j].index
	})

	seen := make(map[string]struct{})
	result := make([]string, 0, limit)
	for _, s := range out {
		if _, dup := seen[s.name]; dup {
			continue
		}
		seen[s.name] = struct{}{}
		result = append(result, s.name)
		if len(result) == limit {
			break
		}
	}
	return result
}
