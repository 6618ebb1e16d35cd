package domain

import (
	"errors"
	"testing"
	"time"
)

func TestResolveEntryDateDefaultsToToday(t *testing.T) {
	now := time.Date(2025, time.February, 1, 15, 4, 5, 0, time.UTC)

	got, err := ResolveEntryDate("", now)
	if err != nil {
		t.Fatalf("ResolveEntryDate returned error: %v", err)
	}
	if got != "01-02-2025" {
		t.Fatalf("ResolveEntryDate = %q, want 01-02-2025", got)
	}
}

func TestResolveEntryDateAcceptsWellFormed(t *testing.T) {
	got, err := ResolveEntryDate("31-12-2024", time.Now())
	if err != nil {
		t.Fatalf("ResolveEntryDate returned error: %v", err)
	}
	if got != "31-12-2024" {
		t.Fatalf("ResolveEntryDate = %q, want 31-12-2024", got)
	}
}

func TestResolveEntryDateNormalizesUnpadded(t *testing.T) {
	got, err := ResolveEntryDate("1-2-2025", time.Now())
	if err != nil {
		t.Fatalf("ResolveEntryDate returned error: %v", err)
	}
	if got != "01-02-2025" {
		t.Fatalf("ResolveEntryDate = %q, want 01-02-2025", got)
	}
}

func TestResolveEntryDateRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"2025-02-01", "yesterday", "32-01-2025", "01/02/2025"} {
		if _, err := ResolveEntryDate(raw, time.Now()); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ResolveEntryDate(%q) error = %v, want ErrInvalidDate", raw, err)
		}
	}
}
