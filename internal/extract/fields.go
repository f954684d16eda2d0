// Package extract scans generated email text for structured trip details
// and tracks which fields a party already knows.
package extract

// Field identifies one structured piece of trip information.
type Field string

const (
	FieldDates               Field = "dates"
	FieldGroupSize           Field = "group_size"
	FieldAges                Field = "ages"
	FieldBudget              Field = "budget"
	FieldSpecialRequirements Field = "special_requirements"
)

// AllFields returns the full field set in stable order.
func AllFields() []Field {
	return []Field{FieldDates, FieldGroupSize, FieldAges, FieldBudget, FieldSpecialRequirements}
}

// FieldSet partitions the fixed field set into known and missing. The zero
// value has every field missing; fields only ever move from missing to
// known, so known and missing are disjoint and their union is always the
// full set.
type FieldSet struct {
	known map[Field]bool
}

// NewFieldSet returns a set with every field missing.
func NewFieldSet() FieldSet {
	return FieldSet{known: make(map[Field]bool, len(AllFields()))}
}

// Known reports whether the field has been learned.
func (s FieldSet) Known(f Field) bool {
	return s.known[f]
}

// MarkKnown returns a copy of the set with the field moved to known.
// Marking an already-known field is a no-op.
func (s FieldSet) MarkKnown(f Field) FieldSet {
	next := FieldSet{known: make(map[Field]bool, len(AllFields()))}
	for k, v := range s.known {
		next.known[k] = v
	}
	next.known[f] = true
	return next
}

// Missing returns the fields not yet learned, in stable order.
func (s FieldSet) Missing() []Field {
	var missing []Field
	for _, f := range AllFields() {
		if !s.known[f] {
			missing = append(missing, f)
		}
	}
	return missing
}

// MissingCount returns how many fields are still missing.
func (s FieldSet) MissingCount() int {
	return len(s.Missing())
}

// KnownCount returns how many fields have been learned.
func (s FieldSet) KnownCount() int {
	return len(AllFields()) - s.MissingCount()
}

// Complete reports whether every field is known.
func (s FieldSet) Complete() bool {
	return s.MissingCount() == 0
}

// ReadyForProposal reports whether enough is known to price a package:
// everything except, at most, special requirements.
func (s FieldSet) ReadyForProposal() bool {
	for _, f := range AllFields() {
		if f == FieldSpecialRequirements {
			continue
		}
		if !s.known[f] {
			return false
		}
	}
	return true
}
