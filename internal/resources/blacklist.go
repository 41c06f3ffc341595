package resources

// Blacklist is the set of property IRIs never offered as question material.
type Blacklist map[string]struct{}

func NewBlacklist(ids []string, prefixes *PrefixTable) Blacklist {
	b := make(Blacklist, len(ids))
	for _, id := range ids {
		if prefixes != nil {
			id = prefixes.Normalize(id)
		}
		b[id] = struct{}{}
	}
	return b
}

func (b Blacklist) Contains(id string) bool {
	_, ok := b[id]
	return ok
}
