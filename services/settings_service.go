// Package services: services/settings_service.go
package services

import (
	"go-holo-council/logger"
	"go-holo-council/models"
	"go-holo-council/store"
)

// SettingsService flips the admin-controlled gates: chart visibility locks,
// voting locks, and per-evening hidden singers. Every mutator is
// privileged-only and silently does nothing when invoked without privilege.
// No transition history is kept.
type SettingsService struct {
	store *store.Store
}

// NewSettingsService creates a new SettingsService instance.
func NewSettingsService(st *store.Store) *SettingsService {
	return &SettingsService{store: st}
}

// ToggleChartLock flips public visibility of one chart view.
func (s *SettingsService) ToggleChartLock(view models.View, isPrivileged bool) error {
	if !isPrivileged {
		return nil
	}
	doc := s.store.Snapshot()
	doc.LockedCharts[view.Key()] = !doc.LockedCharts[view.Key()]
	logger.Info.Printf("[settings] Chart lock for view %s -> %v", view.Key(), doc.LockedCharts[view.Key()])
	return s.store.Patch(models.DocumentPatch{LockedCharts: doc.LockedCharts})
}

// ToggleVotingLock flips ballot acceptance for one evening. Independent of
// the chart lock: an evening can accept votes while its chart stays hidden.
func (s *SettingsService) ToggleVotingLock(evening int, isPrivileged bool) error {
	if !isPrivileged {
		return nil
	}
	doc := s.store.Snapshot()
	doc.LockedVoting[evening] = !doc.LockedVoting[evening]
	logger.Info.Printf("[settings] Voting lock for evening %d -> %v", evening, doc.LockedVoting[evening])
	return s.store.Patch(models.DocumentPatch{LockedVoting: doc.LockedVoting})
}

// ToggleSingerVisibility flips a singer in or out of an evening's hidden set.
func (s *SettingsService) ToggleSingerVisibility(evening, singerID int, isPrivileged bool) error {
	if !isPrivileged {
		return nil
	}
	doc := s.store.Snapshot()
	current := doc.HiddenSingers[evening]
	next := make([]int, 0, len(current)+1)
	found := false
	for _, id := range current {
		if id == singerID {
			found = true
			continue
		}
		next = append(next, id)
	}
	if !found {
		next = append(next, singerID)
	}
	doc.HiddenSingers[evening] = next
	logger.Info.Printf("[settings] Singer %d hidden on evening %d -> %v", singerID, evening, !found)
	return s.store.Patch(models.DocumentPatch{HiddenSingers: doc.HiddenSingers})
}
