// Package services: services/progress_service.go
package services

import (
	"encoding/json"
	"errors"
	"os"
	"sort"

	"go-holo-council/logger"
	"go-holo-council/models"
	"go-holo-council/store"
)

// ErrBadUnlockCode is returned when the per-evening unlock code does not
// match. Compared as an exact string; no lockout or backoff.
var ErrBadUnlockCode = errors.New("wrong unlock code for this evening")

// defaultUnlockCodes are the built-in per-evening revote codes, overridable
// via a JSON file (see LoadUnlockCodes).
var defaultUnlockCodes = map[int]string{
	1: "3742",
	2: "9132",
	3: "9111",
	4: "1119",
	5: "2234",
}

// LoadUnlockCodes reads the per-evening unlock codes from the file named by
// CONTEST_UNLOCK_CODES (JSON, evening -> code). Missing file or entries fall
// back to the built-in defaults.
func LoadUnlockCodes() map[int]string {
	codes := make(map[int]string, len(defaultUnlockCodes))
	for evening, code := range defaultUnlockCodes {
		codes[evening] = code
	}

	path := os.Getenv("CONTEST_UNLOCK_CODES")
	if path == "" {
		return codes
	}
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		logger.Warn.Printf("[progress] Cannot read unlock codes file %s: %v (using defaults)", path, err)
		return codes
	}
	var loaded map[int]string
	if err := json.Unmarshal(data, &loaded); err != nil {
		logger.Warn.Printf("[progress] Cannot parse unlock codes file %s: %v (using defaults)", path, err)
		return codes
	}
	for evening, code := range loaded {
		codes[evening] = code
	}
	return codes
}

// EveningStat summarises ballot completion for one evening, computed over
// the directory excluding the reserved admin operator.
type EveningStat struct {
	Evening        int     `json:"evening"`
	Done           int     `json:"done"`
	Remaining      int     `json:"remaining"`
	Percent        float64 `json:"percent"`
	RatingProtocol bool    `json:"ratingProtocol"`
}

// OperatorStatus is one row of the roster dashboard: who an operator is and
// which evenings they have finalized.
type OperatorStatus struct {
	Username    string       `json:"username"`
	DisplayName string       `json:"displayName"`
	Photo       string       `json:"photo,omitempty"`
	Done        map[int]bool `json:"done"`
}

// ProgressService reads and clears the per-operator finalization records.
type ProgressService struct {
	store       *store.Store
	unlockCodes map[int]string
}

// NewProgressService creates a new ProgressService instance.
func NewProgressService(st *store.Store) *ProgressService {
	return &ProgressService{store: st, unlockCodes: LoadUnlockCodes()}
}

// HasVoted reports whether the operator has a finalized ballot for the evening.
func (s *ProgressService) HasVoted(username string, evening int) bool {
	doc := s.store.Snapshot()
	return doc.VotersProgress[username][evening]
}

// EveningStats computes done/remaining counts per evening over the non-admin
// operators.
func (s *ProgressService) EveningStats() []EveningStat {
	doc := s.store.Snapshot()
	total := 0
	for username := range doc.Operators {
		if username != models.AdminUsername {
			total++
		}
	}

	stats := make([]EveningStat, 0, len(models.Evenings))
	for _, evening := range models.Evenings {
		done := 0
		for username := range doc.Operators {
			if username == models.AdminUsername {
				continue
			}
			if doc.VotersProgress[username][evening] {
				done++
			}
		}
		stat := EveningStat{
			Evening:        evening,
			Done:           done,
			Remaining:      total - done,
			RatingProtocol: evening == models.RatingEvening,
		}
		if total > 0 {
			stat.Percent = float64(done) / float64(total) * 100
		}
		stats = append(stats, stat)
	}
	return stats
}

// Roster lists the non-admin operators sorted by username, with display
// name, photo and per-evening progress flags.
func (s *ProgressService) Roster() []OperatorStatus {
	doc := s.store.Snapshot()
	usernames := make([]string, 0, len(doc.Operators))
	for username := range doc.Operators {
		if username != models.AdminUsername {
			usernames = append(usernames, username)
		}
	}
	sort.Strings(usernames)

	roster := make([]OperatorStatus, 0, len(usernames))
	for _, username := range usernames {
		status := OperatorStatus{
			Username:    username,
			DisplayName: doc.DisplayNames[username],
			Photo:       doc.PersonnelPhotos[username],
			Done:        map[int]bool{},
		}
		if status.DisplayName == "" {
			status.DisplayName = username
		}
		for _, evening := range models.Evenings {
			status.Done[evening] = doc.VotersProgress[username][evening]
		}
		roster = append(roster, status)
	}
	return roster
}

// UnlockBallot re-opens one (operator, evening) ballot after checking the
// evening's unlock code: the prior vote entry and the progress flag are
// cleared in the same write, permitting exactly one re-vote.
func (s *ProgressService) UnlockBallot(username string, evening int, code string) error {
	if s.unlockCodes[evening] != code {
		logger.Warn.Printf("[progress] Wrong unlock code for %s on evening %d", username, evening)
		return ErrBadUnlockCode
	}

	doc := s.store.Snapshot()
	delete(doc.Votes[evening], username)
	delete(doc.VotersProgress[username], evening)

	logger.Info.Printf("[progress] Ballot unlocked for %s on evening %d", username, evening)
	return s.store.Patch(models.DocumentPatch{
		Votes:          doc.Votes,
		VotersProgress: doc.VotersProgress,
	})
}
