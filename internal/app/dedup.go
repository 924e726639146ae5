package app

// Deduplicator remembers which identities have been admitted during one run
type Deduplicator struct {
	seen map[Identity]struct{}
}

// NewDeduplicator creates an empty deduplicator
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[Identity]struct{})}
}

// Admit reports whether the event is the first one with its identity. The first event wins.
func (d *Deduplicator) Admit(ev Event) bool {
	id := ev.Identity()
	if _, ok := d.seen[id]; ok {
		return false
	}
	d.seen[id] = struct{}{}
	return true
}

// Len returns the number of admitted identities
func (d *Deduplicator) Len() int {
	return len(d.seen)
}
