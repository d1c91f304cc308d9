package adventure

import (
	"fmt"
	"regexp"
	"strings"
)

// GameOverKeyword is the reserved result literal that ends the game without
// needing a story result entry on the page.
const GameOverKeyword = "game over"

// Page is a single story screen: the text shown to the player, the choices
// they can take, and the conditions, tests and results those choices refer
// to by name.
type Page struct {
	Title      string
	Story      string
	Choices    []*Choice
	Conditions map[string]*Condition
	Tests      map[string]*Test
	Results    map[string]*StoryResult
}

// Choice is one player facing option. Condition gates availability; exactly
// one of Test or Result names what happens on selection.
type Choice struct {
	Text      string
	Condition string
	Test      string
	Result    string
}

// Condition is a boolean gate built from two expressions and a comparison.
type Condition struct {
	Name        string
	ExpressionL string
	Comparison  Comparison
	ExpressionR string
}

// Test is a randomized check that resolves to one of two result names.
type Test struct {
	Name          string
	ExpressionL   string
	Comparison    Comparison
	ExpressionR   string
	SuccessResult string
	FailureResult string
}

// StoryResult names the page to move to and the record or name changes to
// apply on the way. Side effect values stay unevaluated until apply time.
type StoryResult struct {
	Name        string
	NextPage    string
	SideEffects map[string]string
}

// These capture the brace tags embedded in choice text. The capture group
// takes the tag's identifier, whitespace tolerant around the edges.
var (
	choiceConditionTag = regexp.MustCompile(`\{\s*condition:\s*(\w+(?:\s|\w)*)\s*\}`)
	choiceTestTag      = regexp.MustCompile(`\{\s*test:\s*(\w+(?:\s|\w)*)\s*\}`)
	choiceResultTag    = regexp.MustCompile(`\{\s*result:\s*(\w+(?:\s|\w)*)\s*\}`)
)

// NewPage creates an empty page with initialized tables.
func NewPage() *Page {
	return &Page{
		Conditions: make(map[string]*Condition),
		Tests:      make(map[string]*Test),
		Results:    make(map[string]*StoryResult),
	}
}

// ParsePage reads a page document line by line, dispatching tagged lines to
// the entity parsers. Untagged lines right after a story tag continue the
// story text, joined with a newline. A structurally sound page that fails
// the playable invariant comes back inside IncompletePageError so callers
// can inspect what did load.
func ParsePage(text string) (*Page, error) {
	page := NewPage()

	continuation := false
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "title:"):
			continuation = false
			page.Title = tagRemainder(line, "title:")
		case strings.HasPrefix(line, "story:"):
			continuation = true
			page.Story = tagRemainder(line, "story:")
		case strings.HasPrefix(line, "choice:"):
			continuation = false
			choice, err := ParseChoice(strings.TrimPrefix(line, "choice:"))
			if err != nil {
				return nil, fmt.Errorf("choice line %q: %w", line, err)
			}
			page.Choices = append(page.Choices, choice)
		case strings.HasPrefix(line, "condition:"):
			continuation = false
			cond, err := ParseCondition(tagRemainder(line, "condition:"))
			if err != nil {
				return nil, fmt.Errorf("condition line %q: %w", line, err)
			}
			page.Conditions[cond.Name] = cond
		case strings.HasPrefix(line, "test:"):
			continuation = false
			test, err := ParseTest(tagRemainder(line, "test:"))
			if err != nil {
				return nil, fmt.Errorf("test line %q: %w", line, err)
			}
			page.Tests[test.Name] = test
		case strings.HasPrefix(line, "result:"):
			continuation = false
			res, err := ParseStoryResult(tagRemainder(line, "result:"))
			if err != nil {
				return nil, fmt.Errorf("result line %q: %w", line, err)
			}
			page.Results[res.Name] = res
		default:
			if continuation {
				page.Story += "\n" + line
			}
		}
	}

	if !page.IsPlayable() {
		return page, &IncompletePageError{Page: page}
	}
	return page, nil
}

// IsPlayable requires story text, at least one choice, and somewhere for the
// choices to lead: either a result on the page or every choice ending the
// game.
func (p *Page) IsPlayable() bool {
	if p.Story == "" || len(p.Choices) == 0 {
		return false
	}
	if len(p.Results) > 0 {
		return true
	}
	for _, c := range p.Choices {
		if !c.IsGameOver() {
			return false
		}
	}
	return true
}

// Serialize renders the page back into its document form. Choices keep
// their order; the keyed tables are emitted in sorted key order.
func (p *Page) Serialize() string {
	var b strings.Builder
	fmt.Fprintf(&b, "title: %s\n", p.Title)
	fmt.Fprintf(&b, "story: %s\n", p.Story)
	for _, choice := range p.Choices {
		fmt.Fprintf(&b, "choice: %s\n", choice.Serialize())
	}
	for _, key := range sortedKeys(p.Conditions) {
		fmt.Fprintf(&b, "condition: %s\n", p.Conditions[key].Serialize())
	}
	for _, key := range sortedKeys(p.Tests) {
		fmt.Fprintf(&b, "test: %s\n", p.Tests[key].Serialize())
	}
	for _, key := range sortedKeys(p.Results) {
		fmt.Fprintf(&b, "result: %s\n", p.Results[key].Serialize())
	}
	return b.String()
}

// Rename substitutes the bracketed keyword old with new across every text
// field the page owns: title, story, choice text, condition and test
// expressions, and story result side effects. Side effect keys matching the
// old identifier are re-keyed as well.
func (p *Page) Rename(old, new string) {
	p.Title = RenameKeyword(p.Title, old, new)
	p.Story = RenameKeyword(p.Story, old, new)
	for _, choice := range p.Choices {
		choice.Text = RenameKeyword(choice.Text, old, new)
	}
	for _, cond := range p.Conditions {
		cond.ExpressionL = RenameKeyword(cond.ExpressionL, old, new)
		cond.ExpressionR = RenameKeyword(cond.ExpressionR, old, new)
	}
	for _, test := range p.Tests {
		test.ExpressionL = RenameKeyword(test.ExpressionL, old, new)
		test.ExpressionR = RenameKeyword(test.ExpressionR, old, new)
	}
	for _, res := range p.Results {
		for key, value := range res.SideEffects {
			res.SideEffects[key] = RenameKeyword(value, old, new)
		}
		if value, ok := res.SideEffects[old]; ok {
			delete(res.SideEffects, old)
			res.SideEffects[new] = value
		}
	}
}

// ParseChoice extracts the embedded condition, test and result tags from a
// choice line, first match of each, and keeps the remaining text as what
// the player sees. A choice must point at exactly one of a test or a
// result.
func ParseChoice(text string) (*Choice, error) {
	choice := &Choice{}
	choice.Condition, text = extractChoiceTag(choiceConditionTag, text)
	choice.Test, text = extractChoiceTag(choiceTestTag, text)
	choice.Result, text = extractChoiceTag(choiceResultTag, text)
	choice.Text = strings.TrimSpace(text)

	if !choice.IsValid() {
		return nil, fmt.Errorf("choice %q: %w", choice.Text, ErrInvalid)
	}
	return choice, nil
}

// extractChoiceTag pulls the first match of pat out of text, returning the
// captured identifier and the text with the whole tag removed in place.
func extractChoiceTag(pat *regexp.Regexp, text string) (string, string) {
	loc := pat.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", text
	}
	value := strings.TrimSpace(text[loc[2]:loc[3]])
	return value, text[:loc[0]] + text[loc[1]:]
}

// IsValid requires choice text and exactly one of test or result.
func (c *Choice) IsValid() bool {
	if c.Text == "" {
		return false
	}
	if c.Test == "" && c.Result == "" {
		return false
	}
	if c.Test != "" && c.Result != "" {
		return false
	}
	return true
}

// IsGameOver reports whether picking this choice ends the game outright.
func (c *Choice) IsGameOver() bool {
	return c.Result == GameOverKeyword
}

// Serialize renders the choice as a choice line remainder. The condition
// tag is emitted when present, then exactly one of test or result; a choice
// with neither falls back to the game over literal.
func (c *Choice) Serialize() string {
	var b strings.Builder
	b.WriteString(c.Text)
	if c.Condition != "" {
		fmt.Fprintf(&b, " {condition: %s}", c.Condition)
	}
	switch {
	case c.Test != "":
		fmt.Fprintf(&b, " {test: %s}", c.Test)
	case c.Result != "":
		fmt.Fprintf(&b, " {result: %s}", c.Result)
	default:
		fmt.Fprintf(&b, " {result: %s}", GameOverKeyword)
	}
	return b.String()
}

// ParseCondition reads name, left expression, comparison and right
// expression, in that order.
func ParseCondition(text string) (*Condition, error) {
	parts := splitParts(text)
	if len(parts) != 4 {
		return nil, fmt.Errorf("condition needs 4 parts, got %d: %w", len(parts), ErrIncorrectElementCount)
	}
	return &Condition{
		Name:        parts[0],
		ExpressionL: parts[1],
		Comparison:  ComparisonFrom(parts[2]),
		ExpressionR: parts[3],
	}, nil
}

// Serialize renders the condition as a condition line remainder.
func (c *Condition) Serialize() string {
	return fmt.Sprintf("%s; %s; %s; %s;", c.Name, c.ExpressionL, c.Comparison, c.ExpressionR)
}

// ParseTest reads a condition's four parts followed by the success and
// failure result names.
func ParseTest(text string) (*Test, error) {
	parts := splitParts(text)
	if len(parts) != 6 {
		return nil, fmt.Errorf("test needs 6 parts, got %d: %w", len(parts), ErrIncorrectElementCount)
	}
	return &Test{
		Name:          parts[0],
		ExpressionL:   parts[1],
		Comparison:    ComparisonFrom(parts[2]),
		ExpressionR:   parts[3],
		SuccessResult: parts[4],
		FailureResult: parts[5],
	}, nil
}

// Serialize renders the test as a test line remainder.
func (t *Test) Serialize() string {
	return fmt.Sprintf("%s; %s; %s; %s; %s; %s;",
		t.Name, t.ExpressionL, t.Comparison, t.ExpressionR, t.SuccessResult, t.FailureResult)
}

// ParseStoryResult reads the result name and next page, then pairs off the
// remaining parts as keyword/expression side effects. A keyword without its
// expression is an error.
func ParseStoryResult(text string) (*StoryResult, error) {
	parts := splitParts(text)
	if len(parts) < 2 {
		return nil, fmt.Errorf("result needs a name and a next page, got %d parts: %w", len(parts), ErrIncorrectElementCount)
	}
	res := &StoryResult{
		Name:        parts[0],
		NextPage:    parts[1],
		SideEffects: make(map[string]string),
	}
	rest := parts[2:]
	if len(rest)%2 != 0 {
		return nil, fmt.Errorf("result %q: side effect %q: %w", res.Name, rest[len(rest)-1], ErrElementPairMissing)
	}
	for i := 0; i < len(rest); i += 2 {
		res.SideEffects[rest[i]] = rest[i+1]
	}
	return res, nil
}

// Serialize renders the result as a result line remainder, side effects in
// sorted key order.
func (r *StoryResult) Serialize() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s; %s;", r.Name, r.NextPage)
	for _, key := range sortedKeys(r.SideEffects) {
		fmt.Fprintf(&b, " %s; %s;", key, r.SideEffects[key])
	}
	return b.String()
}
