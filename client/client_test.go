package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/portalgun"
)

func TestClientSteal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/rick-prime/steal", r.URL.Path)
		assert.Equal(t, "portalgun-client", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"character":{"id":"c1","name":"Morty","status":"alive","species":"Human","origin_dimension":"C-137","current_dimension":"RICK_PRIME_DIMENSION","image_url":null,"captured_at":"2024-01-01T00:00:00Z","stolen_by_rick_prime":true,"original_dimension":"C-137"},"stone":{"id":"s1","dimension":"C-137","previous_character_id":"c1"}}`))
	}))
	defer server.Close()

	result, err := New(server.URL + "/").Steal(context.Background())
	require.NoError(t, err)
	assert.Equal(t, portalgun.RickPrimeDimension, result.Character.CurrentDimension)
	assert.True(t, result.Character.StolenByRickPrime)
	assert.Equal(t, "c1", result.Stone.PreviousCharacterID)
}

func TestClientAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"no characters available for Rick Prime to steal"}`))
	}))
	defer server.Close()

	_, err := New(server.URL).Steal(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "no characters available for Rick Prime to steal", apiErr.Message)
}

func TestClientCreateAndList(t *testing.T) {
	var created portalgun.CreateCharacterRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(portalgun.Character{ID: "c1", Name: created.Name})
		case http.MethodGet:
			assert.Equal(t, "C 137", r.URL.Query().Get("dimension"))
			json.NewEncoder(w).Encode([]portalgun.Character{{ID: "c1", Name: "Morty"}})
		}
	}))
	defer server.Close()

	c := New(server.URL)
	character, err := c.CreateCharacter(context.Background(), portalgun.CreateCharacterRequest{Name: "Morty"})
	require.NoError(t, err)
	assert.Equal(t, "c1", character.ID)
	assert.Equal(t, "Morty", created.Name)

	list, err := c.ListCharacters(context.Background(), "C 137")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestClientDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/characters/c1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	assert.NoError(t, New(server.URL).DeleteCharacter(context.Background(), "c1"))
}
