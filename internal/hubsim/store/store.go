package store

import (
	"crypto/rand"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/patrickmn/go-cache"

	"github.com/moonblokz/telemetry-cli/internal/core/domain"
	"github.com/moonblokz/telemetry-cli/internal/telemetry/metric"
)

// Record is an accepted command.
type Record struct {
	ID         string         `json:"id"`
	ReceivedAt time.Time      `json:"received_at"`
	Command    string         `json:"command"`
	Parameters map[string]any `json:"parameters"`
	RelayError string         `json:"relay_error,omitempty"`
}

// Store is an in-memory TTL store of records keyed by ULID.
type Store struct {
	cache *cache.Cache

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// New creates a store that forgets records after retention.
func New(retention time.Duration) *Store {
	return &Store{
		cache:   cache.New(retention, retention),
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

// Add stores doc under a fresh ULID and returns the record.
func (s *Store) Add(doc *domain.Document) (Record, error) {
	id, at, err := s.nextID()
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		ID:         id,
		ReceivedAt: at.UTC(),
		Command:    doc.Command,
		Parameters: doc.Parameters,
	}
	s.cache.SetDefault(id, rec)
	return rec, nil
}

func (s *Store) nextID() (string, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := s.now()
	id, err := ulid.New(ulid.Timestamp(at), s.entropy)
	if err != nil {
		return "", time.Time{}, err
	}
	return id.String(), at, nil
}

// MarkRelayFailed attaches a relay error to an existing record.
func (s *Store) MarkRelayFailed(id string, relayErr error) {
	item, ok := s.cache.Get(id)
	if !ok {
		return
	}
	rec := item.(Record)
	rec.RelayError = relayErr.Error()
	s.cache.SetDefault(id, rec)
}

// Get returns a record by ID.
func (s *Store) Get(id string) (Record, bool) {
	item, ok := s.cache.Get(id)
	if !ok {
		return Record{}, false
	}
	return item.(Record), true
}

// Recent returns up to limit records, newest first. A limit of zero or
// less returns all of them.
func (s *Store) Recent(limit int) []Record {
	items := s.cache.Items()
	records := make([]Record, 0, len(items))
	for _, item := range items {
		records = append(records, item.Object.(Record))
	}

	// ULIDs sort by creation time.
	sort.Slice(records, func(i, j int) bool {
		return records[i].ID > records[j].ID
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}

// Len returns the number of live records.
func (s *Store) Len() int {
	return s.cache.ItemCount()
}

// Collector exposes the record count as a gauge.
func (s *Store) Collector() *metric.Collector {
	return metric.NewCollector("commands_stored", "Commands currently retained.", func() float64 {
		return float64(s.Len())
	})
}
