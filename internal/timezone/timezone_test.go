package timezone

import (
	"testing"
	"time"
)

func TestLocation(t *testing.T) {
	if got := Location("America/Sao_Paulo").String(); got != "America/Sao_Paulo" {
		t.Fatalf("expected America/Sao_Paulo, got %s", got)
	}
	if got := Location("Mars/Olympus"); got != time.UTC {
		t.Fatalf("expected UTC fallback, got %s", got)
	}
	if got := Location(""); got != time.UTC {
		t.Fatalf("expected UTC for empty name, got %s", got)
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("Europe/Lisbon") {
		t.Fatal("Europe/Lisbon should be valid")
	}
	if IsValid("") || IsValid("nowhere") {
		t.Fatal("empty and unknown names must be invalid")
	}
}

