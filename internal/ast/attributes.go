package ast

// Attribute is one `&tag(optional-expression)` annotation (spec.md §3).
type Attribute struct {
	Tag   string
	Value *Node // optional; nil if the attribute carries no expression
}

// Attributes is an ordered list of attributes. Multiple attributes with
// the same tag may coexist (e.g. repeated &requires(...)); Lookup
// returns an unspecified one among duplicates, per spec.md §3.
type Attributes []Attribute

// Add appends an attribute, preserving write order.
func (a *Attributes) Add(tag string, value *Node) {
	*a = append(*a, Attribute{Tag: tag, Value: value})
}

// Lookup returns one attribute with the given tag, and whether any exists.
func (a Attributes) Lookup(tag string) (Attribute, bool) {
	for _, attr := range a {
		if attr.Tag == tag {
			return attr, true
		}
	}
	return Attribute{}, false
}

// All returns every attribute with the given tag, in write order.
func (a Attributes) All(tag string) []Attribute {
	var out []Attribute
	for _, attr := range a {
		if attr.Tag == tag {
			out = append(out, attr)
		}
	}
	return out
}

// Has reports whether any attribute with the given tag is present.
func (a Attributes) Has(tag string) bool {
	_, ok := a.Lookup(tag)
	return ok
}
