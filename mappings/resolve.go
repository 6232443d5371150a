package mappings

import "strconv"

// Property returns the property stored under name at the given
// duplication index, without walking ancestors.
func (s *Schema) Property(name string, dup uint32) (*Property, bool) {
	if s == nil {
		return nil, false
	}
	return s.Properties.GetByKey(PropertyKey{Name: name, Index: dup})
}

// AllProperties returns the properties of the named schema followed by
// those of each ancestor, in declaration order within every schema. The
// walk ends silently at the first name missing from the table; an unknown
// starting name yields nil. Super chains cannot be longer than the table,
// so a corrupt cyclic chain terminates rather than spinning.
func (m *MappingFile) AllProperties(schemaName string) []*Property {
	var out []*Property
	name := schemaName
	for hops := m.Schemas.Len(); hops > 0; hops-- {
		schema, ok := m.Schemas.GetByKey(name)
		if !ok {
			break
		}
		out = append(out, schema.Properties.Values()...)
		name = schema.SuperType
	}
	return out
}

// Property resolves name against the ancestry chain with duplication
// index zero.
func (m *MappingFile) Property(name string, ancestry Ancestry) (*Property, bool) {
	p, _, ok := m.PropertyWithDuplicationIndex(name, ancestry, 0)
	return p, ok
}

// PropertyWithDuplicationIndex resolves name starting at the ancestry's
// immediate parent and walking its super chain. On a hit it returns the
// property and its global index: the declared slot counts of every schema
// walked past, plus the slot of the match.
//
// When the whole chain misses and name is a base-10 number, the name is a
// container-element pseudo-name: resolution retries one level up, looking
// for the parent type's name inside the remaining chain. An exhausted
// chain or a non-numeric miss resolves to absent; lookups never fail with
// an error.
func (m *MappingFile) PropertyWithDuplicationIndex(name string, ancestry Ancestry, dup uint32) (*Property, uint32, bool) {
	property := name
	chain := ancestry

	for {
		parent, ok := chain.Parent()
		if !ok {
			return nil, 0, false
		}

		globalIndex := uint32(0)
		schemaName := parent
		for hops := m.Schemas.Len(); hops > 0; hops-- {
			schema, found := m.Schemas.GetByKey(schemaName)
			if !found {
				break
			}
			if p, hit := schema.Property(property, dup); hit {
				return p, globalIndex + uint32(p.SchemaIndex), true
			}
			globalIndex += uint32(schema.PropCount)
			schemaName = schema.SuperType
		}

		if _, err := strconv.ParseUint(property, 10, 32); err != nil {
			return nil, 0, false
		}
		property = parent
		chain = chain.WithoutParent()
	}
}
