package domain

import (
	"github.com/totegamma/portalgun"
)

// Filter selects documents of the characters collection. Zero-valued fields
// do not constrain the match; set fields are combined with AND.
type Filter struct {
	ID               string
	Kind             Kind
	NotKind          Kind
	Dimension        string
	ExcludeDimension string
}

// CharacterFilter matches every document that is not a stone. Every
// character-facing read goes through it so stones never leak into listings.
func CharacterFilter() Filter {
	return Filter{NotKind: KindStone}
}

func StoneFilter() Filter {
	return Filter{Kind: KindStone}
}

// EligibleFilter matches characters Rick Prime may still steal.
func EligibleFilter() Filter {
	f := CharacterFilter()
	f.ExcludeDimension = portalgun.RickPrimeDimension
	return f
}

func (f Filter) WithID(id string) Filter {
	f.ID = id
	return f
}

func (f Filter) InDimension(dimension string) Filter {
	f.Dimension = dimension
	return f
}

// Match evaluates f against doc in memory.
func (f Filter) Match(doc Document) bool {
	if f.ID != "" && doc.ID != f.ID {
		return false
	}
	if f.Kind != "" && doc.Kind != f.Kind {
		return false
	}
	if f.NotKind != "" && doc.Kind == f.NotKind {
		return false
	}
	if f.Dimension != "" && doc.CurrentDimension != f.Dimension {
		return false
	}
	if f.ExcludeDimension != "" && doc.CurrentDimension == f.ExcludeDimension {
		return false
	}
	return true
}

type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

type FindOptions struct {
	SortBy string
	Order  SortOrder
	Limit  int
}
