package domain

import (
	"time"

	"github.com/totegamma/portalgun"
)

// Patch is a partial update of a character document. Nil fields are left
// untouched. A non-nil empty ImageURL clears the stored image.
type Patch struct {
	Name              *string
	Status            *string
	Species           *string
	OriginDimension   *string
	CurrentDimension  *string
	ImageURL          *string
	CapturedAt        *time.Time
	StolenByRickPrime *bool
	OriginalDimension *string
}

// StealPatch moves a character standing in dimension into Rick Prime's
// dimension, remembering where it came from.
func StealPatch(dimension string) Patch {
	sentinel := portalgun.RickPrimeDimension
	stolen := true
	return Patch{
		CurrentDimension:  &sentinel,
		StolenByRickPrime: &stolen,
		OriginalDimension: &dimension,
	}
}

func (p Patch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Fields returns the set of assignments keyed by persisted field name. A
// cleared image is reported as a nil value.
func (p Patch) Fields() map[string]any {
	fields := make(map[string]any)
	if p.Name != nil {
		fields[FieldName] = *p.Name
	}
	if p.Status != nil {
		fields[FieldStatus] = *p.Status
	}
	if p.Species != nil {
		fields[FieldSpecies] = *p.Species
	}
	if p.OriginDimension != nil {
		fields[FieldOriginDimension] = *p.OriginDimension
	}
	if p.CurrentDimension != nil {
		fields[FieldCurrentDimension] = *p.CurrentDimension
	}
	if p.ImageURL != nil {
		if *p.ImageURL == "" {
			fields[FieldImageURL] = nil
		} else {
			fields[FieldImageURL] = *p.ImageURL
		}
	}
	if p.CapturedAt != nil {
		fields[FieldCapturedAt] = *p.CapturedAt
	}
	if p.StolenByRickPrime != nil {
		fields[FieldStolenByRickPrime] = *p.StolenByRickPrime
	}
	if p.OriginalDimension != nil {
		fields[FieldOriginalDimension] = *p.OriginalDimension
	}
	return fields
}

// Apply writes p onto doc in place.
func (p Patch) Apply(doc *Document) {
	if p.Name != nil {
		doc.Name = *p.Name
	}
	if p.Status != nil {
		doc.Status = *p.Status
	}
	if p.Species != nil {
		doc.Species = *p.Species
	}
	if p.OriginDimension != nil {
		doc.OriginDimension = *p.OriginDimension
	}
	if p.CurrentDimension != nil {
		doc.CurrentDimension = *p.CurrentDimension
	}
	if p.ImageURL != nil {
		if *p.ImageURL == "" {
			doc.ImageURL = nil
		} else {
			url := *p.ImageURL
			doc.ImageURL = &url
		}
	}
	if p.CapturedAt != nil {
		doc.CapturedAt = *p.CapturedAt
	}
	if p.StolenByRickPrime != nil {
		doc.StolenByRickPrime = *p.StolenByRickPrime
	}
	if p.OriginalDimension != nil {
		dim := *p.OriginalDimension
		doc.OriginalDimension = &dim
	}
}
