package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/totegamma/portalgun"
	"github.com/totegamma/portalgun/internal/domain"
)

func TestBuildWhere(t *testing.T) {
	tests := []struct {
		name   string
		filter domain.Filter
		where  string
		args   []any
	}{
		{
			name:   "empty",
			filter: domain.Filter{},
			where:  "1 = 1",
		},
		{
			name:   "characters",
			filter: domain.CharacterFilter(),
			where:  "kind <> ?",
			args:   []any{"stone"},
		},
		{
			name:   "eligible by id",
			filter: domain.EligibleFilter().WithID("a"),
			where:  "id = ? AND kind <> ? AND current_dimension <> ?",
			args:   []any{"a", "stone", portalgun.RickPrimeDimension},
		},
		{
			name:   "characters in dimension",
			filter: domain.CharacterFilter().InDimension("C-137"),
			where:  "kind <> ? AND current_dimension = ?",
			args:   []any{"stone", "C-137"},
		},
		{
			name:   "stones",
			filter: domain.StoneFilter(),
			where:  "kind = ?",
			args:   []any{"stone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildWhere(tt.filter)
			assert.Equal(t, tt.where, where)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestDocumentRowStone(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	stone := domain.NewStoneDocument("4b0c9a0e-6a5f-4c0e-9d64-1c1f4c9e2b11", domain.Character{ID: "c1", CurrentDimension: "C-131"}, now)

	row := toDocumentRow(stone)
	assert.Equal(t, "stone", row.Kind)
	assert.Nil(t, row.CapturedAt)
	if assert.NotNil(t, row.PreviousCharacterID) {
		assert.Equal(t, "c1", *row.PreviousCharacterID)
	}

	back := fromDocumentRow(row)
	view, ok := domain.ToStoneView(&back)
	assert.True(t, ok)
	assert.Equal(t, portalgun.Stone{ID: stone.ID, Dimension: "C-131", PreviousCharacterID: "c1"}, view)
	assert.Equal(t, now, back.CreatedAt)
}

func TestDocumentRowCharacter(t *testing.T) {
	captured := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	doc := domain.Document{
		ID:               "id",
		Name:             "Morty",
		Status:           "alive",
		Species:          "Human",
		OriginDimension:  "C-137",
		CurrentDimension: "C-137",
		CapturedAt:       captured,
	}

	row := toDocumentRow(doc)
	assert.Equal(t, "character", row.Kind)
	assert.Nil(t, row.PreviousCharacterID)
	assert.Nil(t, row.Dimension)

	back := fromDocumentRow(row)
	assert.Equal(t, domain.KindCharacter, back.Kind)
	assert.Equal(t, captured, back.CapturedAt)
	assert.True(t, back.CreatedAt.IsZero())
}

func TestPostgresValidID(t *testing.T) {
	r := NewPostgresDocumentRepository(nil)
	assert.True(t, r.ValidID(r.NewID()))
	assert.False(t, r.ValidID("507f1f77bcf86cd799439011"))
}
