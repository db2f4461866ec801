// Package services: services/contest_service.go
package services

import (
	"errors"
	"strings"

	"go-holo-council/logger"
	"go-holo-council/models"
	"go-holo-council/store"
)

// ErrUnknownSinger is returned for operations against a roster id that does
// not exist.
var ErrUnknownSinger = errors.New("unknown singer id")

// ContestService is the state-owning service behind the synchronization
// layer: every mutation takes a snapshot of the whole document, applies the
// change (cascades included, in the same write), and pushes the result back.
// Ballot commits go through the named-field patch path; management
// operations replace the whole document, exactly as the original board did.
type ContestService struct {
	store   *store.Store
	ballots *BallotService
}

// NewContestService creates a new ContestService instance.
func NewContestService(st *store.Store) *ContestService {
	return &ContestService{store: st, ballots: NewBallotService()}
}

// Snapshot exposes the current document for read paths (charts, dashboards).
func (s *ContestService) Snapshot() *models.ContestDocument {
	return s.store.Snapshot()
}

// Store returns the underlying synchronization layer, for subscribers.
func (s *ContestService) Store() *store.Store {
	return s.store
}

// ----------------- ballots -----------------

// ConfirmBallot validates and commits one operator's ballot for one evening.
// Token evenings submit the token allocation; the rating evening submits the
// raw textual inputs. On acceptance the vote entry is written and the
// progress flag set in the same patch.
func (s *ContestService) ConfirmBallot(username string, evening int, tokens map[int]int, ratings map[int]string, isPrivileged bool) error {
	doc := s.store.Snapshot()

	entry, err := s.ballots.Validate(
		evening,
		tokens,
		ratings,
		doc.LockedVoting[evening],
		isPrivileged,
		doc.VotersProgress[username][evening],
	)
	if err != nil {
		logger.Warn.Printf("[contest] Ballot from %s for evening %d rejected: %v", username, evening, err)
		return err
	}

	if doc.Votes[evening] == nil {
		doc.Votes[evening] = map[string]map[int][]float64{}
	}
	doc.Votes[evening][username] = entry
	if doc.VotersProgress[username] == nil {
		doc.VotersProgress[username] = map[int]bool{}
	}
	doc.VotersProgress[username][evening] = true

	logger.Info.Printf("[contest] Ballot accepted from %s for evening %d (%d entries)", username, evening, len(entry))
	return s.store.Patch(models.DocumentPatch{
		Votes:          doc.Votes,
		VotersProgress: doc.VotersProgress,
	})
}

// DeleteVote removes one (operator, evening) ballot and its progress flag.
// Admin console path; does nothing without privilege.
func (s *ContestService) DeleteVote(username string, evening int, isPrivileged bool) error {
	if !isPrivileged {
		return nil
	}
	doc := s.store.Snapshot()
	delete(doc.Votes[evening], username)
	delete(doc.VotersProgress[username], evening)

	logger.Info.Printf("[contest] Vote deleted for %s on evening %d", username, evening)
	return s.store.Patch(models.DocumentPatch{
		Votes:          doc.Votes,
		VotersProgress: doc.VotersProgress,
	})
}

// ----------------- roster -----------------

// AddSinger appends a contestant with a fresh id taken from the document's
// high-water mark, so ids of deleted singers are never reused.
func (s *ContestService) AddSinger(name, song, coverSong string, isPrivileged bool) (models.Singer, error) {
	if !isPrivileged {
		return models.Singer{}, nil
	}
	doc := s.store.Snapshot()
	singer := models.Singer{ID: doc.NextSingerID, Name: name, Song: song, CoverSong: coverSong}
	doc.NextSingerID++
	doc.SingersList = append(doc.SingersList, singer)

	logger.Info.Printf("[contest] Singer %d (%s) added", singer.ID, singer.Name)
	return singer, s.store.ReplaceAll(doc)
}

// UpdateSingerPhoto attaches a photo blob to a contestant.
func (s *ContestService) UpdateSingerPhoto(singerID int, photo string, isPrivileged bool) error {
	if !isPrivileged {
		return nil
	}
	doc := s.store.Snapshot()
	for i := range doc.SingersList {
		if doc.SingersList[i].ID == singerID {
			doc.SingersList[i].Photo = photo
			return s.store.ReplaceAll(doc)
		}
	}
	return ErrUnknownSinger
}

// DeleteSinger removes a contestant and cascades in the same write: every
// vote entry referencing the id is purged from every evening, and the id is
// removed from every evening's hidden list. A partial cascade is a
// correctness bug.
func (s *ContestService) DeleteSinger(singerID int, isPrivileged bool) error {
	if !isPrivileged {
		return nil
	}
	doc := s.store.Snapshot()

	kept := doc.SingersList[:0]
	found := false
	for _, singer := range doc.SingersList {
		if singer.ID == singerID {
			found = true
			continue
		}
		kept = append(kept, singer)
	}
	if !found {
		return ErrUnknownSinger
	}
	doc.SingersList = kept

	for _, byUser := range doc.Votes {
		for _, ballot := range byUser {
			delete(ballot, singerID)
		}
	}
	for evening, hidden := range doc.HiddenSingers {
		next := hidden[:0]
		for _, id := range hidden {
			if id != singerID {
				next = append(next, id)
			}
		}
		doc.HiddenSingers[evening] = next
	}

	logger.Info.Printf("[contest] Singer %d deleted (votes and hidden lists purged)", singerID)
	return s.store.ReplaceAll(doc)
}

// ----------------- operator directory -----------------

// AddOperator registers an operator. Usernames are lower-cased and trimmed;
// the photo is attached only when provided.
func (s *ContestService) AddOperator(username, displayName, code, photo string, isPrivileged bool) error {
	if !isPrivileged {
		return nil
	}
	doc := s.store.Snapshot()
	key := normalizeUsername(username)
	doc.Operators[key] = code
	doc.DisplayNames[key] = displayName
	if photo != "" {
		doc.PersonnelPhotos[key] = photo
	}

	logger.Info.Printf("[contest] Operator %s added", key)
	return s.store.ReplaceAll(doc)
}

// DeleteOperator removes an operator and cascades in the same write: their
// ballots disappear from every evening and their progress record is
// dropped. The reserved admin identity cannot be deleted (silent no-op).
func (s *ContestService) DeleteOperator(username string, isPrivileged bool) error {
	if !isPrivileged {
		return nil
	}
	key := normalizeUsername(username)
	if key == models.AdminUsername {
		logger.Warn.Println("[contest] Refusing to delete the reserved admin operator")
		return nil
	}

	doc := s.store.Snapshot()
	delete(doc.Operators, key)
	delete(doc.DisplayNames, key)
	delete(doc.PersonnelPhotos, key)
	for _, byUser := range doc.Votes {
		delete(byUser, key)
	}
	delete(doc.VotersProgress, key)

	logger.Info.Printf("[contest] Operator %s deleted (ballots and progress purged)", key)
	return s.store.ReplaceAll(doc)
}

// UpdateOperator edits an operator. A rename is a delete of the old key
// followed by an add of the new one, so the cascade rules apply: the old
// identity's ballots and progress do not survive the rename.
func (s *ContestService) UpdateOperator(oldUsername, newUsername, displayName, code, photo string, isPrivileged bool) error {
	if !isPrivileged {
		return nil
	}
	oldKey := normalizeUsername(oldUsername)
	newKey := normalizeUsername(newUsername)

	if oldKey != newKey {
		if err := s.DeleteOperator(oldKey, isPrivileged); err != nil {
			return err
		}
		return s.AddOperator(newKey, displayName, code, photo, isPrivileged)
	}

	doc := s.store.Snapshot()
	doc.Operators[newKey] = code
	doc.DisplayNames[newKey] = displayName
	if photo != "" {
		doc.PersonnelPhotos[newKey] = photo
	}
	return s.store.ReplaceAll(doc)
}

// SetOperatorPhoto attaches a photo blob to an operator.
func (s *ContestService) SetOperatorPhoto(username, photo string, isPrivileged bool) error {
	if !isPrivileged {
		return nil
	}
	doc := s.store.Snapshot()
	doc.PersonnelPhotos[normalizeUsername(username)] = photo
	return s.store.ReplaceAll(doc)
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
