package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"habit-board/backend/internal/dateutil"

	"github.com/gofrs/uuid"
)

func TestNormalizeRangeIncludesEndDateCompletions(t *testing.T) {
	// A bare YYYY-MM-DD parses to midnight UTC while completions are stored
	// at noon UTC. The normalized range must still cover a completion made
	// on the end date itself.
	from, err := dateutil.ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("Failed to parse from: %v", err)
	}
	to, err := dateutil.ParseDate("2024-03-21")
	if err != nil {
		t.Fatalf("Failed to parse to: %v", err)
	}

	stored := dateutil.NoonUTC(to)
	if !stored.After(to) {
		t.Fatalf("Expected stored noon value %v to sit after the raw bound %v", stored, to)
	}

	nf, nt := normalizeRange(&from, &to)
	if stored.Before(*nf) || stored.After(*nt) {
		t.Errorf("Expected completion at %v inside normalized range [%v, %v]", stored, *nf, *nt)
	}

	first := dateutil.NoonUTC(from)
	if first.Before(*nf) || first.After(*nt) {
		t.Errorf("Expected completion at %v inside normalized range [%v, %v]", first, *nf, *nt)
	}
}

func TestNormalizeRangeNilBounds(t *testing.T) {
	if from, to := normalizeRange(nil, nil); from != nil || to != nil {
		t.Errorf("Expected nil bounds to stay nil, got %v, %v", from, to)
	}

	d := time.Date(2024, 3, 21, 23, 45, 0, 0, time.UTC)
	from, to := normalizeRange(&d, nil)
	if to != nil {
		t.Errorf("Expected nil to bound to stay nil, got %v", to)
	}
	if want := dateutil.NoonUTC(d); !from.Equal(want) {
		t.Errorf("Expected from normalized to %v, got %v", want, *from)
	}
}

func TestTaskListKeyMatchesNormalizedRange(t *testing.T) {
	userID, _ := uuid.NewV4()

	// Two instants on the same calendar day must share a key only when they
	// resolve to the same normalized range.
	morning := time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 21, 23, 0, 0, 0, time.UTC)

	mf, mt := normalizeRange(&morning, &morning)
	ef, et := normalizeRange(&evening, &evening)
	if taskListKey(userID, mf, mt) != taskListKey(userID, ef, et) {
		t.Error("Expected same-day instants to share a cache key after normalization")
	}
	if !mf.Equal(*ef) || !mt.Equal(*et) {
		t.Errorf("Expected identical normalized ranges, got [%v, %v] and [%v, %v]", *mf, *mt, *ef, *et)
	}

	nextDay := time.Date(2024, 3, 22, 1, 0, 0, 0, time.UTC)
	nf, nt := normalizeRange(&nextDay, &nextDay)
	if taskListKey(userID, mf, mt) == taskListKey(userID, nf, nt) {
		t.Error("Expected different days to produce different cache keys")
	}
}

func TestValidateNameCountsCharacters(t *testing.T) {
	if err := validateName(strings.Repeat("a", 100)); err != nil {
		t.Errorf("Expected 100 ascii characters to pass, got %v", err)
	}
	if err := validateName(strings.Repeat("a", 101)); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected 101 characters to fail validation, got %v", err)
	}

	// 100 multi-byte characters are still 100 characters.
	if err := validateName(strings.Repeat("🏃", 100)); err != nil {
		t.Errorf("Expected 100 emoji to pass, got %v", err)
	}
	if err := validateName(strings.Repeat("🏃", 101)); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected 101 emoji to fail validation, got %v", err)
	}
	if err := validateName(""); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected empty name to fail validation, got %v", err)
	}
}

func TestValidateDescriptionCountsCharacters(t *testing.T) {
	if err := validateDescription(strings.Repeat("ä", 500)); err != nil {
		t.Errorf("Expected 500 multi-byte characters to pass, got %v", err)
	}
	if err := validateDescription(strings.Repeat("ä", 501)); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected 501 characters to fail validation, got %v", err)
	}
}
