package entity

// Filter is the set of optional listing predicates combined by logical AND.
// A nil field imposes no constraint; there is no "match nothing" state.
type Filter struct {
	TransactionType *TransactionType
	PropertyType    *PropertyType
	City            *string
	MinPrice        *float64
	MaxPrice        *float64
}

func (f Filter) Empty() bool {
	return f.TransactionType == nil && f.PropertyType == nil &&
		f.City == nil && f.MinPrice == nil && f.MaxPrice == nil
}

// Match reports whether p satisfies every defined predicate.
func (f Filter) Match(p *Property) bool {
	if f.TransactionType != nil && p.TransactionType != *f.TransactionType {
		return false
	}
	if f.PropertyType != nil && p.PropertyType != *f.PropertyType {
		return false
	}
	if f.City != nil && p.City != *f.City {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}

// ApplyFilter derives the visible subset of props under f, preserving order.
func ApplyFilter(props []Property, f Filter) []Property {
	if f.Empty() {
		return props
	}
	out := make([]Property, 0, len(props))
	for i := range props {
		if f.Match(&props[i]) {
			out = append(out, props[i])
		}
	}
	return out
}
