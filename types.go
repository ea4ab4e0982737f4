package portalgun

import (
	"time"
)

const (
	// RickPrimeDimension is reserved for characters taken by Rick Prime.
	// Nothing but a steal may place a character there.
	RickPrimeDimension string = "RICK_PRIME_DIMENSION"
)

const (
	EventCharacterCreated string = "character.created"
	EventCharacterUpdated string = "character.updated"
	EventCharacterMoved   string = "character.moved"
	EventCharacterDeleted string = "character.deleted"
	EventCharacterStolen  string = "character.stolen"
)

// CharacterStatuses lists the accepted values of Character.Status.
var CharacterStatuses = []string{"alive", "dead", "unknown", "captured"}

// RegularDimensions are the dimensions characters are seeded into.
var RegularDimensions = []string{"C-137", "C-131"}

type Character struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Status            string    `json:"status"`
	Species           string    `json:"species"`
	OriginDimension   string    `json:"origin_dimension"`
	CurrentDimension  string    `json:"current_dimension"`
	ImageURL          *string   `json:"image_url"`
	CapturedAt        time.Time `json:"captured_at"`
	StolenByRickPrime bool      `json:"stolen_by_rick_prime"`
	OriginalDimension *string   `json:"original_dimension"`
}

// Stone is the marker left behind in the dimension a character was stolen from.
type Stone struct {
	ID                  string `json:"id"`
	Dimension           string `json:"dimension"`
	PreviousCharacterID string `json:"previous_character_id"`
}

type StealResult struct {
	Character Character `json:"character"`
	Stone     Stone     `json:"stone"`
}

type CreateCharacterRequest struct {
	Name             string     `json:"name"`
	Status           string     `json:"status"`
	Species          string     `json:"species"`
	OriginDimension  string     `json:"origin_dimension"`
	CurrentDimension string     `json:"current_dimension"`
	ImageURL         *string    `json:"image_url,omitempty"`
	CapturedAt       *time.Time `json:"captured_at,omitempty"`
}

// UpdateCharacterRequest is a partial update. Nil fields are left untouched;
// an empty ImageURL clears the image.
type UpdateCharacterRequest struct {
	Name             *string    `json:"name,omitempty"`
	Status           *string    `json:"status,omitempty"`
	Species          *string    `json:"species,omitempty"`
	OriginDimension  *string    `json:"origin_dimension,omitempty"`
	CurrentDimension *string    `json:"current_dimension,omitempty"`
	ImageURL         *string    `json:"image_url,omitempty"`
	CapturedAt       *time.Time `json:"captured_at,omitempty"`
}

type MoveCharacterRequest struct {
	TargetDimension string `json:"target_dimension"`
}

type InsultResponse struct {
	Insult string `json:"insult"`
}

type ServiceStatus struct {
	Message string `json:"message,omitempty"`
	Status  string `json:"status"`
}

// Event is broadcast to realtime subscribers after a write.
type Event struct {
	Type      string     `json:"type"`
	Character *Character `json:"character,omitempty"`
	Stone     *Stone     `json:"stone,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}
