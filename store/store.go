// Package store owns the single shared contest document and implements the
// synchronization contract: full-document subscribe, full-document replace,
// and named-field patch. Consistency is deliberately last-writer-wins on the
// whole document: there is no field-level merge and no compare-and-swap, so
// two concurrent writers race and the temporally last write wins in full.
// File: store/store.go
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"go-holo-council/logger"
	"go-holo-council/models"
)

// Store keeps the authoritative document in memory and snapshots every
// version into a single sqlite row.
type Store struct {
	db *sql.DB

	mu  sync.Mutex
	doc *models.ContestDocument

	subMu   sync.Mutex
	subs    map[int]func(*models.ContestDocument)
	nextSub int
}

// Open opens (or creates) the snapshot database at path and loads the
// current document. An empty database is seeded with the default contest.
// Use ":memory:" for tests.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("store: empty database path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection keeps ":memory:" databases on one memory instance
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS contest_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		doc TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{
		db:   db,
		subs: make(map[int]func(*models.ContestDocument)),
	}

	var raw string
	err = db.QueryRow(`SELECT doc FROM contest_state WHERE id = 1`).Scan(&raw)
	switch {
	case err == sql.ErrNoRows:
		logger.Info.Println("[store] Empty snapshot store, seeding default contest document")
		s.doc = models.DefaultDocument()
		if err := s.persist(s.doc); err != nil {
			_ = db.Close()
			return nil, err
		}
	case err != nil:
		_ = db.Close()
		return nil, err
	default:
		doc := &models.ContestDocument{}
		if err := json.Unmarshal([]byte(raw), doc); err != nil {
			_ = db.Close()
			return nil, err
		}
		normalize(doc)
		s.doc = doc
	}
	return s, nil
}

// Close closes the snapshot database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Snapshot returns a deep copy of the current document. Callers transform
// the copy and push it back via ReplaceAll or Patch; the copy never aliases
// authoritative state.
func (s *Store) Snapshot() *models.ContestDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Subscribe registers onChange to receive the full document after every
// write, in server-observed write order. Each delivery is an authoritative
// snapshot, never a delta; a fast series of writes may reach a slow reader
// coalesced to the latest state. The returned function unsubscribes.
func (s *Store) Subscribe(onChange func(*models.ContestDocument)) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = onChange
	s.subMu.Unlock()

	// deliver the current state immediately, as a remote store would on attach
	onChange(s.Snapshot())

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// ReplaceAll overwrites the entire document. Any concurrent change not
// already reflected in the caller's base snapshot is silently discarded.
func (s *Store) ReplaceAll(doc *models.ContestDocument) error {
	next := doc.Clone()
	normalize(next)

	s.mu.Lock()
	if err := s.persist(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.doc = next
	s.mu.Unlock()

	s.notify(next)
	return nil
}

// Patch merges only the named top-level fields, with the same
// last-writer-wins semantics per field. Still racy with any concurrent
// ReplaceAll.
func (s *Store) Patch(p models.DocumentPatch) error {
	s.mu.Lock()
	next := s.doc.Clone()
	p.Apply(next)
	normalize(next)
	if err := s.persist(next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.doc = next
	s.mu.Unlock()

	s.notify(next)
	return nil
}

// persist writes the document JSON into the single snapshot row.
// Caller holds s.mu.
func (s *Store) persist(doc *models.ContestDocument) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT INTO contest_state (id, doc, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
		string(raw), time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

// notify delivers a fresh clone to every subscriber, synchronously so that
// delivery order matches write order.
func (s *Store) notify(doc *models.ContestDocument) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, onChange := range s.subs {
		onChange(doc.Clone())
	}
}

// normalize repairs nil maps so readers never have to guard against a
// document stored before a field existed. The admin operator is
// re-inserted if a raced write dropped it; it can never be deleted.
func normalize(doc *models.ContestDocument) {
	if doc.Operators == nil {
		doc.Operators = map[string]string{}
	}
	if _, ok := doc.Operators[models.AdminUsername]; !ok {
		doc.Operators[models.AdminUsername] = models.SeedOperators[models.AdminUsername]
	}
	if doc.DisplayNames == nil {
		doc.DisplayNames = map[string]string{}
	}
	if _, ok := doc.DisplayNames[models.AdminUsername]; !ok {
		doc.DisplayNames[models.AdminUsername] = models.SeedDisplayNames[models.AdminUsername]
	}
	if doc.PersonnelPhotos == nil {
		doc.PersonnelPhotos = map[string]string{}
	}
	if doc.Votes == nil {
		doc.Votes = models.GlobalVotes{}
	}
	if doc.VotersProgress == nil {
		doc.VotersProgress = models.VotersProgress{}
	}
	if doc.LockedCharts == nil {
		doc.LockedCharts = map[string]bool{}
	}
	if doc.LockedVoting == nil {
		doc.LockedVoting = map[int]bool{}
	}
	if doc.HiddenSingers == nil {
		doc.HiddenSingers = map[int][]int{}
	}
	for _, evening := range models.Evenings {
		if doc.Votes[evening] == nil {
			doc.Votes[evening] = map[string]map[int][]float64{}
		}
	}
	// the id high-water mark never moves backwards, and documents stored
	// before the field existed pick it up from the roster
	for _, singer := range doc.SingersList {
		if singer.ID >= doc.NextSingerID {
			doc.NextSingerID = singer.ID + 1
		}
	}
	if doc.NextSingerID < 1 {
		doc.NextSingerID = 1
	}
}
