package domain

import (
	"time"
)

// Kind discriminates the documents sharing the characters collection.
type Kind string

const (
	KindCharacter Kind = "character"
	KindStone     Kind = "stone"
)

// Persisted field names, shared by every store implementation.
const (
	FieldID                  = "id"
	FieldKind                = "kind"
	FieldName                = "name"
	FieldStatus              = "status"
	FieldSpecies             = "species"
	FieldOriginDimension     = "origin_dimension"
	FieldCurrentDimension    = "current_dimension"
	FieldImageURL            = "image_url"
	FieldCapturedAt          = "captured_at"
	FieldStolenByRickPrime   = "stolen_by_rick_prime"
	FieldOriginalDimension   = "original_dimension"
	FieldPreviousCharacterID = "previous_character_id"
	FieldDimension           = "dimension"
	FieldCreatedAt           = "created_at"
)

// Document is the stored shape of both characters and stones. Fields that do
// not belong to the document's kind stay zero.
type Document struct {
	ID   string
	Kind Kind

	// character
	Name              string
	Status            string
	Species           string
	OriginDimension   string
	CurrentDimension  string
	ImageURL          *string
	CapturedAt        time.Time
	StolenByRickPrime bool
	OriginalDimension *string

	// stone
	PreviousCharacterID string
	Dimension           string

	CreatedAt time.Time
}

// Variant is a decoded Document: either a Character or a Stone.
type Variant interface {
	Kind() Kind
}

type Character struct {
	ID                string
	Name              string
	Status            string
	Species           string
	OriginDimension   string
	CurrentDimension  string
	ImageURL          *string
	CapturedAt        time.Time
	StolenByRickPrime bool
	OriginalDimension *string
}

func (Character) Kind() Kind { return KindCharacter }

type Stone struct {
	ID                  string
	PreviousCharacterID string
	Dimension           string
	CreatedAt           time.Time
}

func (Stone) Kind() Kind { return KindStone }

// Decode turns a stored document into its variant. Any kind other than
// "stone" is read as a character, which must then carry every required field.
func Decode(doc Document) (Variant, error) {
	switch doc.Kind {
	case KindStone:
		return Stone{
			ID:                  doc.ID,
			PreviousCharacterID: doc.PreviousCharacterID,
			Dimension:           doc.Dimension,
			CreatedAt:           doc.CreatedAt,
		}, nil
	default:
		required := []struct {
			field string
			value string
		}{
			{FieldName, doc.Name},
			{FieldStatus, doc.Status},
			{FieldSpecies, doc.Species},
			{FieldOriginDimension, doc.OriginDimension},
			{FieldCurrentDimension, doc.CurrentDimension},
		}
		for _, r := range required {
			if r.value == "" {
				return nil, MalformedDocumentError{ID: doc.ID, Field: r.field}
			}
		}
		return Character{
			ID:                doc.ID,
			Name:              doc.Name,
			Status:            doc.Status,
			Species:           doc.Species,
			OriginDimension:   doc.OriginDimension,
			CurrentDimension:  doc.CurrentDimension,
			ImageURL:          doc.ImageURL,
			CapturedAt:        doc.CapturedAt,
			StolenByRickPrime: doc.StolenByRickPrime,
			OriginalDimension: doc.OriginalDimension,
		}, nil
	}
}

// NewCharacterDocument builds the document inserted for a new character.
func NewCharacterDocument(c Character) Document {
	return Document{
		ID:                c.ID,
		Kind:              KindCharacter,
		Name:              c.Name,
		Status:            c.Status,
		Species:           c.Species,
		OriginDimension:   c.OriginDimension,
		CurrentDimension:  c.CurrentDimension,
		ImageURL:          c.ImageURL,
		CapturedAt:        c.CapturedAt,
		StolenByRickPrime: c.StolenByRickPrime,
		OriginalDimension: c.OriginalDimension,
	}
}

// NewStoneDocument builds the marker left where c was standing when it was
// taken.
func NewStoneDocument(id string, c Character, now time.Time) Document {
	return Document{
		ID:                  id,
		Kind:                KindStone,
		PreviousCharacterID: c.ID,
		Dimension:           c.CurrentDimension,
		CreatedAt:           now,
	}
}
