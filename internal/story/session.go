package story

import (
	"fmt"

	"github.com/purrie/adventure-book-sub000/internal/adventure"
	"github.com/purrie/adventure-book-sub000/internal/evaluation"
)

// PageReader supplies page documents by name. The library package provides
// the file-backed implementation; tests supply in-memory ones.
type PageReader interface {
	ReadPage(name string) (*adventure.Page, error)
}

// Session is one play-through of an adventure. It owns working copies of
// the record and name tables so the parsed document stays pristine, the
// current page, and the seeded generator every evaluation draws from.
type Session struct {
	Adventure *adventure.Adventure
	Page      *adventure.Page
	PageName  string
	Records   map[string]*adventure.Record
	Names     map[string]*adventure.Name
	Rand      *evaluation.Random
	Over      bool

	pages PageReader
}

// NewSession copies the adventure's state tables, seeds the generator and
// loads the start page.
func NewSession(adv *adventure.Adventure, pages PageReader, seed int64) (*Session, error) {
	s := &Session{
		Adventure: adv,
		Records:   copyRecords(adv.Records),
		Names:     copyNames(adv.Names),
		Rand:      evaluation.NewRandom(seed),
		pages:     pages,
	}
	if err := s.Goto(adv.Start); err != nil {
		return nil, err
	}
	return s, nil
}

// Goto loads and switches to the named page, or ends the session when the
// name is the game over literal.
func (s *Session) Goto(name string) error {
	if name == adventure.GameOverKeyword {
		s.Over = true
		return nil
	}
	page, err := s.pages.ReadPage(name)
	if err != nil {
		return fmt.Errorf("page %q: %w", name, err)
	}
	s.Page = page
	s.PageName = name
	return nil
}

// StoryText returns the current page's story with keywords substituted.
func (s *Session) StoryText() (string, error) {
	return FillText(s.Page.Story, s.Records, s.Names)
}

// Title returns the current page's title with keywords substituted.
func (s *Session) Title() (string, error) {
	return FillText(s.Page.Title, s.Records, s.Names)
}

// Choices renders the current page's choices with their availability.
func (s *Session) Choices() ([]ChoiceView, error) {
	return RenderChoices(s.Page, s.Records, s.Names, s.Rand)
}

// Select takes the choice at the given index: game over choices end the
// session, test choices roll and follow the outcome's result, plain result
// choices apply directly. Applying a result mutates the session's records
// and names and moves to the result's next page.
func (s *Session) Select(index int) error {
	if s.Over {
		return fmt.Errorf("the game is over")
	}
	if index < 0 || index >= len(s.Page.Choices) {
		return fmt.Errorf("choice %d is out of range", index)
	}
	choice := s.Page.Choices[index]

	if choice.IsGameOver() {
		s.Over = true
		return nil
	}

	resultName := choice.Result
	if choice.Test != "" {
		test, ok := s.Page.Tests[choice.Test]
		if !ok {
			return fmt.Errorf("test %q: %w", choice.Test, ErrMissingLink)
		}
		name, err := EvaluateTest(test, s.Records, s.Rand)
		if err != nil {
			return err
		}
		resultName = name
	}

	result, ok := s.Page.Results[resultName]
	if !ok {
		return fmt.Errorf("result %q: %w", resultName, ErrMissingLink)
	}
	next, err := ApplyResult(result, s.Records, s.Names, s.Rand)
	if err != nil {
		return err
	}
	return s.Goto(next)
}

func copyRecords(src map[string]*adventure.Record) map[string]*adventure.Record {
	dst := make(map[string]*adventure.Record, len(src))
	for key, rec := range src {
		clone := *rec
		dst[key] = &clone
	}
	return dst
}

func copyNames(src map[string]*adventure.Name) map[string]*adventure.Name {
	dst := make(map[string]*adventure.Name, len(src))
	for key, name := range src {
		clone := *name
		dst[key] = &clone
	}
	return dst
}
