// Package models defines data structures used across the application.
// File: models/contest.go
package models

import (
	"fmt"
	"strconv"
)

// ----------------------- contestant model -----------------------

// Singer is one contestant on the fixed roster. The ID is assigned at
// creation and never reused; the photo is an inline base64 blob.
type Singer struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Song      string `json:"song"`
	CoverSong string `json:"coverSong,omitempty"`
	Photo     string `json:"photo,omitempty"`
}

// ----------------------- vote tables -----------------------

// GlobalVotes maps evening -> operator username -> singer ID -> cast values.
// Token evenings hold a single integer token count per singer; evening 4
// holds a single rating in [1,10].
type GlobalVotes map[int]map[string]map[int][]float64

// VotersProgress maps operator username -> evening -> finalized flag.
type VotersProgress map[string]map[int]bool

// ----------------------- evenings & views -----------------------

// Evenings is the fixed set of voting rounds.
var Evenings = []int{1, 2, 3, 4, 5}

// RatingEvening is the one evening scored by rating instead of tokens.
const RatingEvening = 4

// AdminUsername is the reserved privileged operator. It always exists in
// the directory and is excluded from participation counts.
const AdminUsername = "admin"

// View identifies a chart view: ViewTotal for the aggregate, otherwise
// View(1)..View(5) for a single evening.
type View int

// ViewTotal is the aggregate chart over the token evenings.
const ViewTotal View = 0

// IsEvening reports whether v addresses a single evening.
func (v View) IsEvening() bool { return v >= 1 && v <= 5 }

// Key returns the string key used in the lockedCharts map ("total" or "1".."5").
func (v View) Key() string {
	if v == ViewTotal {
		return "total"
	}
	return strconv.Itoa(int(v))
}

// ParseView converts a path/query value into a View.
func ParseView(s string) (View, error) {
	if s == "total" {
		return ViewTotal, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 5 {
		return 0, fmt.Errorf("invalid chart view %q", s)
	}
	return View(n), nil
}

// ----------------------- shared document -----------------------

// ContestDocument is the single shared state document. Every mutation is a
// read-modify-write of the whole document (or a named-field patch); the
// temporally last write wins in full.
type ContestDocument struct {
	Operators       map[string]string `json:"operators"`
	DisplayNames    map[string]string `json:"displayNames"`
	PersonnelPhotos map[string]string `json:"personnelPhotos"`
	SingersList     []Singer          `json:"singersList"`
	Votes           GlobalVotes       `json:"votes"`
	VotersProgress  VotersProgress    `json:"votersProgress"`
	LockedCharts    map[string]bool   `json:"lockedCharts"`
	LockedVoting    map[int]bool      `json:"lockedVoting"`
	HiddenSingers   map[int][]int     `json:"hiddenSingers"`
	// NextSingerID is a high-water mark: ids of deleted singers are never
	// handed out again.
	NextSingerID int `json:"nextSingerId"`
}

// DocumentPatch names the top-level fields to merge into the document.
// A nil field is left untouched.
type DocumentPatch struct {
	Operators       map[string]string
	DisplayNames    map[string]string
	PersonnelPhotos map[string]string
	SingersList     []Singer
	Votes           GlobalVotes
	VotersProgress  VotersProgress
	LockedCharts    map[string]bool
	LockedVoting    map[int]bool
	HiddenSingers   map[int][]int
}

// Apply merges the patch's non-nil fields into the document.
func (p DocumentPatch) Apply(doc *ContestDocument) {
	if p.Operators != nil {
		doc.Operators = p.Operators
	}
	if p.DisplayNames != nil {
		doc.DisplayNames = p.DisplayNames
	}
	if p.PersonnelPhotos != nil {
		doc.PersonnelPhotos = p.PersonnelPhotos
	}
	if p.SingersList != nil {
		doc.SingersList = p.SingersList
	}
	if p.Votes != nil {
		doc.Votes = p.Votes
	}
	if p.VotersProgress != nil {
		doc.VotersProgress = p.VotersProgress
	}
	if p.LockedCharts != nil {
		doc.LockedCharts = p.LockedCharts
	}
	if p.LockedVoting != nil {
		doc.LockedVoting = p.LockedVoting
	}
	if p.HiddenSingers != nil {
		doc.HiddenSingers = p.HiddenSingers
	}
}

// Clone returns a deep copy so callers can transform a snapshot without
// touching the authoritative document.
func (d *ContestDocument) Clone() *ContestDocument {
	out := &ContestDocument{
		Operators:       cloneStringMap(d.Operators),
		DisplayNames:    cloneStringMap(d.DisplayNames),
		PersonnelPhotos: cloneStringMap(d.PersonnelPhotos),
		SingersList:     append([]Singer(nil), d.SingersList...),
		Votes:           d.Votes.Clone(),
		VotersProgress:  d.VotersProgress.Clone(),
		LockedCharts:    make(map[string]bool, len(d.LockedCharts)),
		LockedVoting:    make(map[int]bool, len(d.LockedVoting)),
		HiddenSingers:   make(map[int][]int, len(d.HiddenSingers)),
		NextSingerID:    d.NextSingerID,
	}
	for k, v := range d.LockedCharts {
		out.LockedCharts[k] = v
	}
	for k, v := range d.LockedVoting {
		out.LockedVoting[k] = v
	}
	for k, v := range d.HiddenSingers {
		out.HiddenSingers[k] = append([]int(nil), v...)
	}
	return out
}

// Clone deep-copies the vote table.
func (g GlobalVotes) Clone() GlobalVotes {
	out := make(GlobalVotes, len(g))
	for evening, byUser := range g {
		userCopy := make(map[string]map[int][]float64, len(byUser))
		for user, ballot := range byUser {
			ballotCopy := make(map[int][]float64, len(ballot))
			for singerID, values := range ballot {
				ballotCopy[singerID] = append([]float64(nil), values...)
			}
			userCopy[user] = ballotCopy
		}
		out[evening] = userCopy
	}
	return out
}

// Clone deep-copies the progress table.
func (p VotersProgress) Clone() VotersProgress {
	out := make(VotersProgress, len(p))
	for user, byEvening := range p {
		entry := make(map[int]bool, len(byEvening))
		for evening, done := range byEvening {
			entry[evening] = done
		}
		out[user] = entry
	}
	return out
}

func cloneStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
