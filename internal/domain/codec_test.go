package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/portalgun"
)

func sampleCharacterDoc() Document {
	return Document{
		ID:               "c1",
		Kind:             KindCharacter,
		Name:             "Morty Test",
		Status:           "alive",
		Species:          "Human",
		OriginDimension:  "C-137",
		CurrentDimension: "C-137",
		CapturedAt:       time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func sampleStoneDoc() Document {
	return Document{
		ID:                  "s1",
		Kind:                KindStone,
		PreviousCharacterID: "c1",
		Dimension:           "C-137",
		CreatedAt:           time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestCodecDiscrimination(t *testing.T) {
	legacy := sampleCharacterDoc()
	legacy.Kind = ""

	docs := []Document{sampleCharacterDoc(), sampleStoneDoc(), legacy}
	for _, doc := range docs {
		_, isCharacter := ToCharacterView(&doc)
		_, isStone := ToStoneView(&doc)

		assert.Equal(t, doc.Kind == KindStone, !isCharacter, "character view for kind %q", doc.Kind)
		assert.Equal(t, doc.Kind != KindStone, !isStone, "stone view for kind %q", doc.Kind)
	}
}

func TestToCharacterView(t *testing.T) {
	doc := sampleCharacterDoc()
	doc.ImageURL = portalgun.Ptr("https://example.com/morty.png")

	view, ok := ToCharacterView(&doc)
	require.True(t, ok)

	assert.Equal(t, "c1", view.ID)
	assert.Equal(t, "Morty Test", view.Name)
	assert.Equal(t, "alive", view.Status)
	assert.Equal(t, "Human", view.Species)
	assert.Equal(t, "C-137", view.OriginDimension)
	assert.Equal(t, "C-137", view.CurrentDimension)
	assert.Equal(t, "https://example.com/morty.png", *view.ImageURL)
	assert.Equal(t, doc.CapturedAt, view.CapturedAt)
	assert.False(t, view.StolenByRickPrime)
	assert.Nil(t, view.OriginalDimension)
}

func TestToCharacterViewNil(t *testing.T) {
	_, ok := ToCharacterView(nil)
	assert.False(t, ok)
	_, ok = ToStoneView(nil)
	assert.False(t, ok)
}

func TestToCharacterViewMissingField(t *testing.T) {
	doc := sampleCharacterDoc()
	doc.Species = ""

	_, ok := ToCharacterView(&doc)
	assert.False(t, ok)

	_, err := Decode(doc)
	var malformed MalformedDocumentError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, FieldSpecies, malformed.Field)
}

func TestToStoneViewDefaults(t *testing.T) {
	doc := Document{ID: "s2", Kind: KindStone}

	view, ok := ToStoneView(&doc)
	require.True(t, ok)
	assert.Equal(t, portalgun.Stone{ID: "s2"}, view)
}

func TestToViewsFilterVariants(t *testing.T) {
	docs := []Document{sampleCharacterDoc(), sampleStoneDoc()}

	characters := ToCharacterViews(docs)
	require.Len(t, characters, 1)
	assert.Equal(t, "c1", characters[0].ID)

	stones := ToStoneViews(docs)
	require.Len(t, stones, 1)
	assert.Equal(t, portalgun.Stone{ID: "s1", Dimension: "C-137", PreviousCharacterID: "c1"}, stones[0])
}
