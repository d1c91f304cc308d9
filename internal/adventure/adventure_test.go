package adventure

import (
	"errors"
	"strings"
	"testing"
)

const sampleAdventure = `title: The Hollow Crown
description: A damp crypt under the old keep.
Nobody who entered has come back out.
start: entrance
record: courage; attributes; 10;
record: torches; 3;
name: hero; Alex;
`

func TestParseAdventure(t *testing.T) {
	adv, err := ParseAdventure(sampleAdventure, "/books/crown")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	if adv.Title != "The Hollow Crown" {
		t.Errorf("unexpected title: %q", adv.Title)
	}
	if adv.Start != "entrance" {
		t.Errorf("unexpected start: %q", adv.Start)
	}
	if adv.Path != "/books/crown" {
		t.Errorf("unexpected path: %q", adv.Path)
	}

	// Continuation lines join the description directly, no separator.
	want := "A damp crypt under the old keep.Nobody who entered has come back out."
	if adv.Description != want {
		t.Errorf("unexpected description: %q", adv.Description)
	}

	courage, ok := adv.Records["courage"]
	if !ok {
		t.Fatalf("courage record missing")
	}
	if courage.Category != "attributes" || courage.Value != 10 {
		t.Errorf("unexpected courage record: %+v", courage)
	}
	torches, ok := adv.Records["torches"]
	if !ok {
		t.Fatalf("torches record missing")
	}
	if torches.Category != "" || torches.Value != 3 {
		t.Errorf("unexpected torches record: %+v", torches)
	}

	hero, ok := adv.Names["hero"]
	if !ok {
		t.Fatalf("hero name missing")
	}
	if hero.Value != "Alex" {
		t.Errorf("unexpected hero value: %q", hero.Value)
	}
}

func TestParseAdventureWithoutTitle(t *testing.T) {
	_, err := ParseAdventure("start: entrance\n", "/books/broken")
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestAdventureSerializeRoundTrip(t *testing.T) {
	adv, err := ParseAdventure(sampleAdventure, "/books/crown")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	again, err := ParseAdventure(adv.Serialize(), adv.Path)
	if err != nil {
		t.Fatalf("failed to reparse: %v", err)
	}

	if again.Title != adv.Title || again.Description != adv.Description || again.Start != adv.Start {
		t.Errorf("metadata changed across round trip: %+v vs %+v", again, adv)
	}
	if len(again.Records) != len(adv.Records) {
		t.Fatalf("expected %d records, got %d", len(adv.Records), len(again.Records))
	}
	for name, rec := range adv.Records {
		got, ok := again.Records[name]
		if !ok {
			t.Errorf("record %q lost in round trip", name)
			continue
		}
		if *got != *rec {
			t.Errorf("record %q changed: %+v vs %+v", name, got, rec)
		}
	}
	for keyword, name := range adv.Names {
		got, ok := again.Names[keyword]
		if !ok {
			t.Errorf("name %q lost in round trip", keyword)
			continue
		}
		if *got != *name {
			t.Errorf("name %q changed: %+v vs %+v", keyword, got, name)
		}
	}
}

func TestIsPlayable(t *testing.T) {
	adv := NewAdventure()
	adv.Title = "Untitled"
	adv.Path = "/books/untitled"
	if adv.IsPlayable() {
		t.Errorf("adventure without a start page should not be playable")
	}
	adv.Start = "first"
	if !adv.IsPlayable() {
		t.Errorf("adventure with a start page should be playable")
	}
}

func TestParseRecord(t *testing.T) {
	rec, err := ParseRecord("strength;")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if rec.Name != "strength" || rec.Category != "" || rec.Value != 0 {
		t.Errorf("unexpected record: %+v", rec)
	}

	rec, err = ParseRecord("strength; 12;")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if rec.Value != 12 || rec.Category != "" {
		t.Errorf("second numeric part should be the value: %+v", rec)
	}

	rec, err = ParseRecord("strength; attributes;")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if rec.Category != "attributes" || rec.Value != 0 {
		t.Errorf("second non-numeric part should be the category: %+v", rec)
	}

	rec, err = ParseRecord("strength; attributes; 12;")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if rec.Category != "attributes" || rec.Value != 12 {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestParseRecordErrors(t *testing.T) {
	if _, err := ParseRecord("strength; attributes; lots;"); !errors.Is(err, ErrValueNaN) {
		t.Errorf("expected ErrValueNaN, got %v", err)
	}
	if _, err := ParseRecord("a; b; 1; extra;"); !errors.Is(err, ErrIncorrectElementCount) {
		t.Errorf("expected ErrIncorrectElementCount, got %v", err)
	}
	if _, err := ParseRecord(""); !errors.Is(err, ErrIncorrectElementCount) {
		t.Errorf("expected ErrIncorrectElementCount for empty line, got %v", err)
	}
}

func TestParseName(t *testing.T) {
	name, err := ParseName("hero;")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if name.Keyword != "hero" || name.Value != "" {
		t.Errorf("unexpected name: %+v", name)
	}

	name, err = ParseName("hero; Alex;")
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if name.Value != "Alex" {
		t.Errorf("unexpected name value: %q", name.Value)
	}

	if _, err := ParseName("hero; Alex; extra;"); !errors.Is(err, ErrIncorrectElementCount) {
		t.Errorf("expected ErrIncorrectElementCount, got %v", err)
	}
}

func TestUpdateRecord(t *testing.T) {
	adv := NewAdventure()
	adv.Records["courage"] = &Record{Name: "courage", Value: 10}

	if err := adv.UpdateRecord("courage", "bravery"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	if _, ok := adv.Records["courage"]; ok {
		t.Errorf("old key should be gone")
	}
	rec, ok := adv.Records["bravery"]
	if !ok {
		t.Fatalf("new key missing")
	}
	if rec.Name != "bravery" || rec.Value != 10 {
		t.Errorf("unexpected record after rename: %+v", rec)
	}

	if err := adv.UpdateRecord("ghost", "spirit"); !errors.Is(err, ErrMissingRecord) {
		t.Errorf("expected ErrMissingRecord, got %v", err)
	}
}

func TestUpdateName(t *testing.T) {
	adv := NewAdventure()
	adv.Names["hero"] = &Name{Keyword: "hero", Value: "Alex"}

	if err := adv.UpdateName("hero", "protagonist"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	name, ok := adv.Names["protagonist"]
	if !ok {
		t.Fatalf("new key missing")
	}
	if name.Keyword != "protagonist" || name.Value != "Alex" {
		t.Errorf("unexpected name after rename: %+v", name)
	}

	if err := adv.UpdateName("ghost", "spirit"); !errors.Is(err, ErrMissingRecord) {
		t.Errorf("expected ErrMissingRecord, got %v", err)
	}
}

func TestSerializeEmitsSortedTables(t *testing.T) {
	adv := NewAdventure()
	adv.Title = "Sorted"
	adv.Path = "/books/sorted"
	adv.Records["zeta"] = &Record{Name: "zeta"}
	adv.Records["alpha"] = &Record{Name: "alpha"}

	out := adv.Serialize()
	if strings.Index(out, "record: alpha") > strings.Index(out, "record: zeta") {
		t.Errorf("records should serialize in sorted key order:\n%s", out)
	}
}
