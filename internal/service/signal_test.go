package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/totegamma/portalgun"
)

func TestMatchPrefixes(t *testing.T) {
	assert.True(t, MatchPrefixes(portalgun.EventCharacterStolen, []string{"character."}))
	assert.True(t, MatchPrefixes(portalgun.EventCharacterStolen, []string{"x", "character.stolen"}))
	assert.True(t, MatchPrefixes(portalgun.EventCharacterMoved, []string{""}))
	assert.False(t, MatchPrefixes(portalgun.EventCharacterMoved, []string{"character.stolen"}))
	assert.False(t, MatchPrefixes(portalgun.EventCharacterMoved, nil))
}

func TestSignalServiceDisabled(t *testing.T) {
	s := NewSignalService(nil)
	assert.False(t, s.Enabled())
	assert.NoError(t, s.Publish(context.Background(), portalgun.Event{Type: portalgun.EventCharacterCreated}))

	done := make(chan struct{})
	go func() {
		s.Realtime(context.Background(), make(chan []string), make(chan portalgun.Event))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Realtime should return immediately without redis")
	}
}
