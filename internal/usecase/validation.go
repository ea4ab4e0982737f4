package usecase

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/totegamma/portalgun"
	"github.com/totegamma/portalgun/internal/domain"
)

const (
	nameMaxLength      = 200
	statusMaxLength    = 50
	speciesMaxLength   = 100
	dimensionMaxLength = 200
	imageURLMaxLength  = 2000
)

func requiredText(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domain.ValidationError{Field: field, Message: "must not be empty"}
	}
	if utf8.RuneCountInString(value) > max {
		return "", domain.ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", max)}
	}
	return value, nil
}

func validStatus(value string) (string, error) {
	status := portalgun.NormalizeStatus(value)
	if status == "" || utf8.RuneCountInString(status) > statusMaxLength {
		return "", domain.ValidationError{Field: domain.FieldStatus, Message: "must not be empty"}
	}
	if !portalgun.IsCharacterStatus(status) {
		return "", domain.ValidationError{
			Field:   domain.FieldStatus,
			Message: "must be one of: " + strings.Join(portalgun.CharacterStatuses, ", "),
		}
	}
	return status, nil
}

// validImageURL normalizes an image url. An empty value means "no image".
func validImageURL(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if utf8.RuneCountInString(value) > imageURLMaxLength {
		return "", domain.ValidationError{Field: domain.FieldImageURL, Message: fmt.Sprintf("must be at most %d characters", imageURLMaxLength)}
	}
	if !portalgun.IsHTTPURL(value) {
		return "", domain.ValidationError{Field: domain.FieldImageURL, Message: "must be an http or https URL"}
	}
	return value, nil
}

// validDimension rejects Rick Prime's dimension, which only a steal may
// assign.
func validDimension(field, value string) (string, error) {
	dimension, err := requiredText(field, value, dimensionMaxLength)
	if err != nil {
		return "", err
	}
	if portalgun.IsPrimeDimension(dimension) {
		return "", domain.ValidationError{Field: field, Message: "is reserved for Rick Prime"}
	}
	return dimension, nil
}

func validateCreate(req portalgun.CreateCharacterRequest, now time.Time) (domain.Character, error) {
	var (
		c   domain.Character
		err error
	)

	if c.Name, err = requiredText(domain.FieldName, req.Name, nameMaxLength); err != nil {
		return domain.Character{}, err
	}
	if c.Status, err = validStatus(req.Status); err != nil {
		return domain.Character{}, err
	}
	if c.Species, err = requiredText(domain.FieldSpecies, req.Species, speciesMaxLength); err != nil {
		return domain.Character{}, err
	}
	if c.OriginDimension, err = requiredText(domain.FieldOriginDimension, req.OriginDimension, dimensionMaxLength); err != nil {
		return domain.Character{}, err
	}
	if c.CurrentDimension, err = validDimension(domain.FieldCurrentDimension, req.CurrentDimension); err != nil {
		return domain.Character{}, err
	}
	if req.ImageURL != nil {
		url, err := validImageURL(*req.ImageURL)
		if err != nil {
			return domain.Character{}, err
		}
		if url != "" {
			c.ImageURL = &url
		}
	}

	c.CapturedAt = now
	if req.CapturedAt != nil && !req.CapturedAt.IsZero() {
		c.CapturedAt = req.CapturedAt.UTC()
	}

	return c, nil
}

func validateUpdate(req portalgun.UpdateCharacterRequest) (domain.Patch, error) {
	var p domain.Patch

	if req.Name != nil {
		v, err := requiredText(domain.FieldName, *req.Name, nameMaxLength)
		if err != nil {
			return domain.Patch{}, err
		}
		p.Name = &v
	}
	if req.Status != nil {
		v, err := validStatus(*req.Status)
		if err != nil {
			return domain.Patch{}, err
		}
		p.Status = &v
	}
	if req.Species != nil {
		v, err := requiredText(domain.FieldSpecies, *req.Species, speciesMaxLength)
		if err != nil {
			return domain.Patch{}, err
		}
		p.Species = &v
	}
	if req.OriginDimension != nil {
		v, err := requiredText(domain.FieldOriginDimension, *req.OriginDimension, dimensionMaxLength)
		if err != nil {
			return domain.Patch{}, err
		}
		p.OriginDimension = &v
	}
	if req.CurrentDimension != nil {
		v, err := validDimension(domain.FieldCurrentDimension, *req.CurrentDimension)
		if err != nil {
			return domain.Patch{}, err
		}
		p.CurrentDimension = &v
	}
	if req.ImageURL != nil {
		v, err := validImageURL(*req.ImageURL)
		if err != nil {
			return domain.Patch{}, err
		}
		p.ImageURL = &v
	}
	if req.CapturedAt != nil {
		v := req.CapturedAt.UTC()
		p.CapturedAt = &v
	}

	if p.IsEmpty() {
		return domain.Patch{}, domain.ValidationError{Message: "no fields to update"}
	}
	return p, nil
}
