// Package services: services/ballot_service.go
package services

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"go-holo-council/models"
)

// Token evening rules: each operator spends at most TokenBudget tokens per
// evening, at most MaxTokensPerSinger on any one singer.
const (
	TokenBudget        = 10
	MaxTokensPerSinger = 4
)

// Rating evening rules: free-form numeric entry, accepted range inclusive.
const (
	MinRating = 1.0
	MaxRating = 10.0
)

// Validation rejections. These are recovered locally by the caller and never
// escalate past the controller layer.
var (
	ErrAlreadyVoted        = errors.New("ballot already finalized for this evening")
	ErrVotingLocked        = errors.New("voting is locked for this evening")
	ErrEmptyBallot         = errors.New("nothing to submit: no tokens allocated")
	ErrNoValidRatings      = errors.New("nothing valid: no rating survived filtering")
	ErrTokenOutOfRange     = errors.New("token count out of range for singer")
	ErrTokenBudgetExceeded = errors.New("token budget exceeded")
)

// BallotService turns proposed ballots into accepted vote records or rejections.
type BallotService struct{}

// NewBallotService creates a new BallotService instance.
func NewBallotService() *BallotService {
	return &BallotService{}
}

// AdjustTokens applies one step to a working token allocation. The delta is
// usually +1/-1 but nothing forces that, so the bounds are checked against
// the stepped values: a step that would push the singer outside
// [0,MaxTokensPerSinger] or the running total past TokenBudget is refused
// without mutating the allocation.
func (s *BallotService) AdjustTokens(allocation map[int]int, singerID, delta int) error {
	next := allocation[singerID] + delta
	if next < 0 || next > MaxTokensPerSinger {
		return ErrTokenOutOfRange
	}
	if tokenTotal(allocation)+delta > TokenBudget {
		return ErrTokenBudgetExceeded
	}
	allocation[singerID] = next
	return nil
}

// ParseRating parses a free-form rating input. Decimal comma and decimal
// point are both accepted. The second return is false when the input does
// not parse to a finite number in [MinRating,MaxRating].
func (s *BallotService) ParseRating(raw string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	num, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(num, 0) || math.IsNaN(num) {
		return 0, false
	}
	if num < MinRating || num > MaxRating {
		return 0, false
	}
	return num, true
}

// Validate checks a proposed ballot for the given evening and returns the
// sanitized vote entry. Token evenings take the token allocation; the rating
// evening takes the raw textual inputs, silently dropping entries that do
// not parse into range (only a fully empty result is rejected).
func (s *BallotService) Validate(evening int, tokens map[int]int, ratings map[int]string, locked, isPrivileged, alreadyFinalized bool) (map[int][]float64, error) {
	if alreadyFinalized {
		return nil, ErrAlreadyVoted
	}
	if locked && !isPrivileged {
		return nil, ErrVotingLocked
	}
	if evening == models.RatingEvening {
		return s.sanitizeRatingBallot(ratings)
	}
	return s.sanitizeTokenBallot(tokens)
}

// sanitizeTokenBallot re-checks the full allocation: every count in range,
// total within budget, at least one non-zero entry.
func (s *BallotService) sanitizeTokenBallot(tokens map[int]int) (map[int][]float64, error) {
	total := 0
	entry := make(map[int][]float64, len(tokens))
	for singerID, count := range tokens {
		if count < 0 || count > MaxTokensPerSinger {
			return nil, ErrTokenOutOfRange
		}
		total += count
		entry[singerID] = []float64{float64(count)}
	}
	if total > TokenBudget {
		return nil, ErrTokenBudgetExceeded
	}
	if total == 0 {
		return nil, ErrEmptyBallot
	}
	return entry, nil
}

// sanitizeRatingBallot keeps only the inputs that parse into range. The
// whole submission is rejected only when nothing survives.
func (s *BallotService) sanitizeRatingBallot(ratings map[int]string) (map[int][]float64, error) {
	entry := make(map[int][]float64, len(ratings))
	for singerID, raw := range ratings {
		if num, ok := s.ParseRating(raw); ok {
			entry[singerID] = []float64{num}
		}
	}
	if len(entry) == 0 {
		return nil, ErrNoValidRatings
	}
	return entry, nil
}

func tokenTotal(allocation map[int]int) int {
	total := 0
	for _, count := range allocation {
		total += count
	}
	return total
}
