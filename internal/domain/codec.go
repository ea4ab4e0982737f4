package domain

import (
	"github.com/totegamma/portalgun"
)

// ToCharacterView returns the API view of doc. It reports false when doc is
// nil, is a stone, or is a character missing a required field.
func ToCharacterView(doc *Document) (portalgun.Character, bool) {
	if doc == nil {
		return portalgun.Character{}, false
	}
	variant, err := Decode(*doc)
	if err != nil {
		return portalgun.Character{}, false
	}
	switch v := variant.(type) {
	case Character:
		return characterView(v), true
	case Stone:
		return portalgun.Character{}, false
	}
	return portalgun.Character{}, false
}

// ToStoneView returns the API view of doc only when doc is a stone.
func ToStoneView(doc *Document) (portalgun.Stone, bool) {
	if doc == nil {
		return portalgun.Stone{}, false
	}
	variant, err := Decode(*doc)
	if err != nil {
		return portalgun.Stone{}, false
	}
	switch v := variant.(type) {
	case Stone:
		return portalgun.Stone{
			ID:                  v.ID,
			Dimension:           v.Dimension,
			PreviousCharacterID: v.PreviousCharacterID,
		}, true
	case Character:
		return portalgun.Stone{}, false
	}
	return portalgun.Stone{}, false
}

// ToCharacterViews converts docs, dropping anything that is not a character.
func ToCharacterViews(docs []Document) []portalgun.Character {
	views := make([]portalgun.Character, 0, len(docs))
	for i := range docs {
		if view, ok := ToCharacterView(&docs[i]); ok {
			views = append(views, view)
		}
	}
	return views
}

// ToStoneViews converts docs, dropping anything that is not a stone.
func ToStoneViews(docs []Document) []portalgun.Stone {
	views := make([]portalgun.Stone, 0, len(docs))
	for i := range docs {
		if view, ok := ToStoneView(&docs[i]); ok {
			views = append(views, view)
		}
	}
	return views
}

func characterView(c Character) portalgun.Character {
	return portalgun.Character{
		ID:                c.ID,
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
