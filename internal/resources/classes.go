package resources

// ClassFrequencyTable maps class IRIs to their known instance counts so a random
// instance can be sampled with a single OFFSET query.
type ClassFrequencyTable struct {
	counts map[string]int
	total  int
}

// NewClassFrequencyTable normalises every class key through prefixes.
func NewClassFrequencyTable(counts map[string]int, prefixes *PrefixTable) *ClassFrequencyTable {
	t := &ClassFrequencyTable{counts: make(map[string]int, len(counts))}
	for class, n := range counts {
		if prefixes != nil {
			class = prefixes.Normalize(class)
		}
		t.counts[class] += n
		t.total += n
	}
	return t
}

// Count returns the instance count of class; class must already be normalised.
func (t *ClassFrequencyTable) Count(class string) (int, bool) {
	n, ok := t.counts[class]
	return n, ok
}

// Total is the sum over all classes, used as the entity population estimate.
func (t *ClassFrequencyTable) Total() int { return t.total }

// Classes returns the normalised class identifiers.
func (t *ClassFrequencyTable) Classes() []string {
	out := make([]string, 0, len(t.counts))
	for c := range t.counts {
		out = append(out, c)
	}
	return out
}

func (t *ClassFrequencyTable) Len() int { return len(t.counts) }
