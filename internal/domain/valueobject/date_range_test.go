package valueobject

import (
	"errors"
	"testing"
	"time"

	domainerror "github.com/salesledger/backend/internal/domain/error"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{name: "valid range", start: "2024-01-01", end: "2024-01-31"},
		{name: "single day", start: "2024-02-10", end: "2024-02-10"},
		{name: "missing start", start: "", end: "2024-01-31", wantErr: true},
		{name: "missing end", start: "2024-01-01", end: "", wantErr: true},
		{name: "unparseable", start: "01/01/2024", end: "2024-01-31", wantErr: true},
		{name: "inverted", start: "2024-02-01", end: "2024-01-31", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseDateRange(tt.start, tt.end)
			if tt.wantErr {
				if !errors.Is(err, domainerror.ErrInvalidDateRange) {
					t.Errorf("expected ErrInvalidDateRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.StartLabel() != tt.start || r.EndLabel() != tt.end {
				t.Errorf("got %s, want %s - %s", r, tt.start, tt.end)
			}
		})
	}
}

func TestDateRange_EndIsInclusive(t *testing.T) {
	r, err := ParseDateRange("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lateOnLastDay := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	if !r.Contains(lateOnLastDay) {
		t.Errorf("expected %v to be inside %s", lateOnLastDay, r)
	}
	nextDay := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	if r.Contains(nextDay) {
		t.Errorf("expected %v to be outside %s", nextDay, r)
	}
}

func TestMonthRange(t *testing.T) {
	r, err := MonthRange(2, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.StartLabel() != "2024-02-01" || r.EndLabel() != "2024-02-29" {
		t.Errorf("unexpected leap month range %s", r)
	}

	if _, err := MonthRange(13, 2024); !errors.Is(err, domainerror.ErrInvalidDateRange) {
		t.Errorf("expected ErrInvalidDateRange for month 13, got %v", err)
	}
}
