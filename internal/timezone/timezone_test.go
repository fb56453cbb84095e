package timezone

import (
	"testing"
	"time"
)

func TestIsValid(t *testing.T) {
	if !IsValid(DefaultTimezone) {
		t.Fatalf("%s must be valid", DefaultTimezone)
	}
	if !IsValid("Europe/Lisbon") {
		t.Fatal("IANA zone rejected")
	}
	if IsValid("Not/AZone") {
		t.Fatal("garbage zone accepted")
	}
}

func TestLocationRoundTrip(t *testing.T) {
	loc := Location(DefaultTimezone)
	if loc == nil {
		t.Fatal("nil location")
	}

	ts := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC).In(loc)
	if ts.Location().String() != DefaultTimezone {
		t.Fatalf("location = %s", ts.Location())
	}
}
