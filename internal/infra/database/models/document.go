package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Document is the postgres row shared by characters and stones.
type Document struct {
	ID                  string     `gorm:"primaryKey;type:text"`
	Kind                string     `gorm:"type:text;not null;default:'character';index:idx_documents_kind_dimension"`
	Name                string     `gorm:"type:text;index"`
	Status              string     `gorm:"type:text"`
	Species             string     `gorm:"type:text"`
	OriginDimension     string     `gorm:"type:text"`
	CurrentDimension    string     `gorm:"type:text;index:idx_documents_kind_dimension"`
	ImageURL            *string    `gorm:"type:text"`
	CapturedAt          *time.Time `gorm:"type:timestamp with time zone"`
	StolenByRickPrime   bool       `gorm:"type:boolean;not null;default:false"`
	OriginalDimension   *string    `gorm:"type:text"`
	PreviousCharacterID *string    `gorm:"type:text"`
	Dimension           *string    `gorm:"type:text"`
	CreatedAt           time.Time  `gorm:"type:timestamp with time zone;not null;default:clock_timestamp();index"`
}

// MongoDocument is the bson shape of the characters collection. Stone-only and
// character-only fields are omitted when empty so each kind keeps its own
// shape on disk.
type MongoDocument struct {
	ID                  bson.ObjectID `bson:"_id"`
	Kind                string        `bson:"kind,omitempty"`
	Name                string        `bson:"name,omitempty"`
	Status              string        `bson:"status,omitempty"`
	Species             string        `bson:"species,omitempty"`
	OriginDimension     string        `bson:"origin_dimension,omitempty"`
	CurrentDimension    string        `bson:"current_dimension,omitempty"`
	ImageURL            *string       `bson:"image_url,omitempty"`
	CapturedAt          *time.Time    `bson:"captured_at,omitempty"`
	StolenByRickPrime   bool          `bson:"stolen_by_rick_prime,omitempty"`
	OriginalDimension   *string       `bson:"original_dimension,omitempty"`
	PreviousCharacterID string        `bson:"previous_character_id,omitempty"`
	Dimension           string        `bson:"dimension,omitempty"`
	CreatedAt           *time.Time    `bson:"created_at,omitempty"`
}
