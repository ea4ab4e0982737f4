package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/totegamma/portalgun"
)

// EventChannel is the redis pub/sub channel every event is published on.
const EventChannel = "portalgun:events"

type SignalService struct {
	rdb *redis.Client
}

// NewSignalService returns a service publishing through redisClient. A nil
// client disables publishing and realtime delivery.
func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Enabled() bool {
	return s != nil && s.rdb != nil
}

func (s *SignalService) Publish(ctx context.Context, event portalgun.Event) error {
	if !s.Enabled() {
		return nil
	}

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, EventChannel, jsonstr).Err()
	if err != nil {
		return err
	}

	return nil
}

// Realtime forwards events whose type starts with one of the prefixes last
// received on input to output, until ctx is done. Until the first
// subscription nothing is forwarded. Neither channel is closed here.
func (s *SignalService) Realtime(ctx context.Context, input <-chan []string, output chan<- portalgun.Event) {
	if !s.Enabled() {
		return
	}

	pubsub := s.rdb.Subscribe(ctx, EventChannel)
	defer pubsub.Close()
	messages := pubsub.Channel()

	var prefixes []string
	for {
		select {
		case <-ctx.Done():
			return
		case next := <-input:
			prefixes = next
		case msg, ok := <-messages:
			if !ok {
				return
			}

			var event portalgun.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.WarnContext(
					ctx, "dropping malformed event",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}
			if !MatchPrefixes(event.Type, prefixes) {
				continue
			}

			select {
			case output <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}

func MatchPrefixes(eventType string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(eventType, prefix) {
			return true
		}
	}
	return false
}
