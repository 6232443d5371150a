package mappings

// Ancestry is the chain of ancestor type names for a value being
// resolved, ordered innermost (immediate parent) first.
type Ancestry []string

// Parent returns the innermost ancestor.
func (a Ancestry) Parent() (string, bool) {
	if len(a) == 0 {
		return "", false
	}
	return a[0], true
}

// WithoutParent returns the chain with the innermost ancestor removed.
func (a Ancestry) WithoutParent() Ancestry {
	if len(a) == 0 {
		return nil
	}
	return a[1:]
}

// WithParent returns a new chain with name pushed as the innermost
// ancestor. The receiver is not modified.
func (a Ancestry) WithParent(name string) Ancestry {
	out := make(Ancestry, 0, len(a)+1)
	out = append(out, name)
	return append(out, a...)
}
