package forms

import (
	"strings"

	"github.com/andresvaldez/despacho/internal/domain"
)

// CatalogValue is the tagged union a typeahead accepts from its
// container: a bare identifier, a fully resolved entry, or nothing.
// Normalization happens once here instead of type switches scattered
// through the controls.
type CatalogValue struct {
	kind  valueKind
	id    string
	entry domain.Catalog
}

type valueKind int

const (
	valueEmpty valueKind = iota
	valueRaw
	valueResolved
)

// EmptyValue is the absent CatalogValue.
func EmptyValue() CatalogValue {
	return CatalogValue{kind: valueEmpty}
}

// RawID wraps a bare identifier whose entry has not been resolved yet.
func RawID(id string) CatalogValue {
	if strings.TrimSpace(id) == "" {
		return EmptyValue()
	}
	return CatalogValue{kind: valueRaw, id: id}
}

// Resolved wraps a full catalog entry.
func Resolved(entry domain.Catalog) CatalogValue {
	if entry.ID == "" {
		return EmptyValue()
	}
	return CatalogValue{kind: valueResolved, id: entry.ID, entry: entry}
}

// NormalizeCatalogValue converts any externally supplied value shape
// into a CatalogValue. Unknown shapes normalize to empty.
func NormalizeCatalogValue(v any) CatalogValue {
	switch val := v.(type) {
	case nil:
		return EmptyValue()
	case CatalogValue:
		return val
	case string:
		return RawID(val)
	case domain.Catalog:
		return Resolved(val)
	case *domain.Catalog:
		if val == nil {
			return EmptyValue()
		}
		return Resolved(*val)
	default:
		return EmptyValue()
	}
}

// IsEmpty reports whether no value is held.
func (v CatalogValue) IsEmpty() bool { return v.kind == valueEmpty }

// ID returns the committed identifier, or "" when empty.
func (v CatalogValue) ID() string { return v.id }

// Entry returns the resolved entry and whether one is held.
func (v CatalogValue) Entry() (domain.Catalog, bool) {
	return v.entry, v.kind == valueResolved
}

// sameID compares two catalog identifiers after string normalization,
// so ids that differ only in surrounding whitespace still match.
func sameID(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}
