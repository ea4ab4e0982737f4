package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/totegamma/portalgun"
	"github.com/totegamma/portalgun/internal/domain"
)

// mockStore is an in-memory DocumentStore. Every operation holds the lock for
// its whole duration, which makes FindOneAndUpdate atomic like the real
// stores.
type mockStore struct {
	mu   sync.Mutex
	docs []domain.Document
	seq  int

	insertErr error
	updateErr error
	sampleErr error
	findErr   error
	deleteErr error
	pingErr   error

	// beforeUpdate runs once, outside the lock, before the next
	// FindOneAndUpdate. Tests use it to interleave a competing write.
	beforeUpdate func(s *mockStore)

	inserts int
	updates int
}

func newMockStore() *mockStore {
	return &mockStore{}
}

func (s *mockStore) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return fmt.Sprintf("%024x", s.seq)
}

func (s *mockStore) ValidID(id string) bool {
	return len(id) == 24
}

func (s *mockStore) InsertOne(ctx context.Context, doc domain.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return "", s.insertErr
	}
	if doc.ID == "" {
		s.seq++
		doc.ID = fmt.Sprintf("%024x", s.seq)
	}
	for _, d := range s.docs {
		if d.ID == doc.ID {
			return "", fmt.Errorf("duplicate id %s", doc.ID)
		}
	}
	s.docs = append(s.docs, doc)
	s.inserts++
	return doc.ID, nil
}

func (s *mockStore) FindOneAndUpdate(ctx context.Context, filter domain.Filter, patch domain.Patch) (*domain.Document, error) {
	s.mu.Lock()
	hook := s.beforeUpdate
	s.beforeUpdate = nil
	s.mu.Unlock()
	if hook != nil {
		hook(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	for i := range s.docs {
		if filter.Match(s.docs[i]) {
			patch.Apply(&s.docs[i])
			s.updates++
			updated := s.docs[i]
			return &updated, nil
		}
	}
	return nil, domain.NotFoundError{Resource: "document"}
}

func (s *mockStore) SampleOne(ctx context.Context, filter domain.Filter) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sampleErr != nil {
		return nil, s.sampleErr
	}
	var matches []domain.Document
	for _, d := range s.docs {
		if filter.Match(d) {
			matches = append(matches, d)
		}
	}
	if len(matches) == 0 {
		return nil, domain.NotFoundError{Resource: "document"}
	}
	picked := matches[rand.IntN(len(matches))]
	return &picked, nil
}

func (s *mockStore) Find(ctx context.Context, filter domain.Filter, opts domain.FindOptions) ([]domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	var result []domain.Document
	for _, d := range s.docs {
		if filter.Match(d) {
			result = append(result, d)
		}
	}
	less := func(a, b domain.Document) bool {
		switch opts.SortBy {
		case domain.FieldName:
			return a.Name < b.Name
		case domain.FieldCreatedAt:
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return false
	}
	sort.SliceStable(result, func(i, j int) bool {
		if opts.Order == domain.Descending {
			return less(result[j], result[i])
		}
		return less(result[i], result[j])
	})
	if opts.Limit > 0 && len(result) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result, nil
}

func (s *mockStore) DeleteOne(ctx context.Context, filter domain.Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	for i, d := range s.docs {
		if filter.Match(d) {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *mockStore) Ping(ctx context.Context) error {
	return s.pingErr
}

func (s *mockStore) addCharacter(name, dimension string) domain.Document {
	doc := domain.NewCharacterDocument(domain.Character{
		ID:               s.NewID(),
		Name:             name,
		Status:           "alive",
		Species:          "Human",
		OriginDimension:  dimension,
		CurrentDimension: dimension,
		CapturedAt:       time.Now().UTC(),
	})
	if _, err := s.InsertOne(context.Background(), doc); err != nil {
		panic(err)
	}
	return doc
}

func (s *mockStore) get(id string) (domain.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.docs {
		if d.ID == id {
			return d, true
		}
	}
	return domain.Document{}, false
}

func (s *mockStore) stones() []domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Document
	for _, d := range s.docs {
		if d.Kind == domain.KindStone {
			result = append(result, d)
		}
	}
	return result
}

type mockCache struct {
	mu          sync.Mutex
	gen         uint64
	lists       map[string][]portalgun.Character
	invalidated int
	hits        int
}

func newMockCache() *mockCache {
	return &mockCache{gen: 1, lists: map[string][]portalgun.Character{}}
}

func (m *mockCache) Get(ctx context.Context, dimension string) ([]portalgun.Character, uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list, ok := m.lists[dimension]
	if ok {
		m.hits++
	}
	return list, m.gen, ok
}

func (m *mockCache) Set(ctx context.Context, dimension string, token uint64, characters []portalgun.Character) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token != m.gen {
		return nil
	}
	m.lists[dimension] = characters
	return nil
}

func (m *mockCache) Invalidate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.lists = map[string][]portalgun.Character{}
	m.invalidated++
	return nil
}

type mockPublisher struct {
	mu     sync.Mutex
	events []portalgun.Event
	err    error
}

func (m *mockPublisher) Publish(ctx context.Context, event portalgun.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.err
}
