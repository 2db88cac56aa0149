package document

// CollapsedSet tracks which heading blocks currently hide their nested
// content. Pure presentation state: membership never changes block content.
type CollapsedSet map[string]struct{}

func NewCollapsedSet() CollapsedSet {
	return make(CollapsedSet)
}

func (c CollapsedSet) Has(id string) bool {
	_, ok := c[id]
	return ok
}

func (c CollapsedSet) Add(id string) {
	c[id] = struct{}{}
}

func (c CollapsedSet) Remove(id string) {
	delete(c, id)
}

func (c CollapsedSet) Toggle(id string) {
	if c.Has(id) {
		delete(c, id)
		return
	}
	c[id] = struct{}{}
}

func (c CollapsedSet) IDs() []string {
	out := make([]string, 0, len(c))
	for id := range c {
		out = append(out, id)
	}
	return out
}
