package story

import (
	"errors"
	"fmt"
	"testing"

	"github.com/purrie/adventure-book-sub000/internal/adventure"
)

// stubPages serves pages from memory so session tests need no files.
type stubPages map[string]*adventure.Page

func (s stubPages) ReadPage(name string) (*adventure.Page, error) {
	page, ok := s[name]
	if !ok {
		return nil, fmt.Errorf("no page %q", name)
	}
	return page, nil
}

func testAdventure() (*adventure.Adventure, stubPages) {
	adv := adventure.NewAdventure()
	adv.Title = "The Hollow Crown"
	adv.Path = "/books/crown"
	adv.Start = "entrance"
	adv.Records["courage"] = &adventure.Record{Name: "courage", Value: 3}
	adv.Names["hero"] = &adventure.Name{Keyword: "hero", Value: "Alex"}

	entrance := adventure.NewPage()
	entrance.Title = "The Entrance"
	entrance.Story = "[hero] stands at the door."
	entrance.Choices = append(entrance.Choices,
		&adventure.Choice{Text: "Enter", Result: "enter"},
		&adventure.Choice{Text: "Walk away", Result: adventure.GameOverKeyword},
		&adventure.Choice{Text: "Steel yourself", Test: "nerve"},
	)
	entrance.Tests["nerve"] = &adventure.Test{
		Name: "nerve", ExpressionL: "[courage]", Comparison: adventure.Greater, ExpressionR: "1",
		SuccessResult: "enter", FailureResult: "flee",
	}
	entrance.Results["enter"] = &adventure.StoryResult{
		Name:        "enter",
		NextPage:    "hall",
		SideEffects: map[string]string{"courage": "[courage]+1"},
	}
	entrance.Results["flee"] = &adventure.StoryResult{
		Name:     "flee",
		NextPage: adventure.GameOverKeyword,
	}

	hall := adventure.NewPage()
	hall.Title = "The Hall"
	hall.Story = "Dust everywhere."
	hall.Choices = append(hall.Choices, &adventure.Choice{Text: "Rest", Result: adventure.GameOverKeyword})

	return adv, stubPages{"entrance": entrance, "hall": hall}
}

func TestNewSessionLoadsStartPage(t *testing.T) {
	adv, pages := testAdventure()
	s, err := NewSession(adv, pages, 1)
	if err != nil {
		t.Fatalf("failed to start: %v", err)
	}
	if s.PageName != "entrance" {
		t.Errorf("expected to start on entrance, got %q", s.PageName)
	}

	text, err := s.StoryText()
	if err != nil {
		t.Fatalf("failed to fill story: %v", err)
	}
	if text != "Alex stands at the door." {
		t.Errorf("unexpected story text: %q", text)
	}
}

func TestNewSessionMissingStartPage(t *testing.T) {
	adv, pages := testAdventure()
	adv.Start = "nowhere"
	if _, err := NewSession(adv, pages, 1); err == nil {
		t.Fatalf("expected an error for a missing start page")
	}
}

func TestSessionCopiesStateTables(t *testing.T) {
	adv, pages := testAdventure()
	s, err := NewSession(adv, pages, 1)
	if err != nil {
		t.Fatalf("failed to start: %v", err)
	}

	s.Records["courage"].Value = 99
	s.Names["hero"].Value = "Morgan"
	if adv.Records["courage"].Value != 3 {
		t.Errorf("session writes leaked into the adventure record table")
	}
	if adv.Names["hero"].Value != "Alex" {
		t.Errorf("session writes leaked into the adventure name table")
	}
}

func TestSelectResultChoice(t *testing.T) {
	adv, pages := testAdventure()
	s, err := NewSession(adv, pages, 1)
	if err != nil {
		t.Fatalf("failed to start: %v", err)
	}

	if err := s.Select(0); err != nil {
		t.Fatalf("failed to select: %v", err)
	}
	if s.PageName != "hall" {
		t.Errorf("expected to move to hall, got %q", s.PageName)
	}
	if s.Records["courage"].Value != 4 {
		t.Errorf("side effect not applied, courage = %d", s.Records["courage"].Value)
	}
}

func TestSelectGameOverChoice(t *testing.T) {
	adv, pages := testAdventure()
	s, err := NewSession(adv, pages, 1)
	if err != nil {
		t.Fatalf("failed to start: %v", err)
	}

	if err := s.Select(1); err != nil {
		t.Fatalf("failed to select: %v", err)
	}
	if !s.Over {
		t.Errorf("game over choice should end the session")
	}
	if err := s.Select(0); err == nil {
		t.Errorf("selecting after the end should fail")
	}
}

func TestSelectTestChoice(t *testing.T) {
	adv, pages := testAdventure()
	s, err := NewSession(adv, pages, 1)
	if err != nil {
		t.Fatalf("failed to start: %v", err)
	}

	// Courage 3 > 1, so the nerve test always succeeds and leads to the hall.
	if err := s.Select(2); err != nil {
		t.Fatalf("failed to select: %v", err)
	}
	if s.PageName != "hall" {
		t.Errorf("expected the test to succeed into hall, got %q", s.PageName)
	}
}

func TestSelectTestChoiceFailureEndsGame(t *testing.T) {
	adv, pages := testAdventure()
	adv.Records["courage"].Value = 0
	s, err := NewSession(adv, pages, 1)
	if err != nil {
		t.Fatalf("failed to start: %v", err)
	}

	if err := s.Select(2); err != nil {
		t.Fatalf("failed to select: %v", err)
	}
	if !s.Over {
		t.Errorf("the flee result points at game over, session should be over")
	}
}

func TestSelectDanglingResult(t *testing.T) {
	adv, pages := testAdventure()
	pages["entrance"].Choices[0].Result = "ghost"
	s, err := NewSession(adv, pages, 1)
	if err != nil {
		t.Fatalf("failed to start: %v", err)
	}

	err = s.Select(0)
	if !errors.Is(err, ErrMissingLink) {
		t.Fatalf("expected ErrMissingLink, got %v", err)
	}
}

func TestSelectOutOfRange(t *testing.T) {
	adv, pages := testAdventure()
	s, err := NewSession(adv, pages, 1)
	if err != nil {
		t.Fatalf("failed to start: %v", err)
	}
	if err := s.Select(7); err == nil {
		t.Errorf("expected an error for an out of range index")
	}
}
