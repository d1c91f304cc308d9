// Package story resolves page text and choices against live adventure
// state and applies the transitions the player picks. It is the thin layer
// a front end drives: everything here is synchronous and returns typed
// errors, never rendering anything itself.
package story

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/purrie/adventure-book-sub000/internal/adventure"
	"github.com/purrie/adventure-book-sub000/internal/evaluation"
)

// ErrMissingLink reports a choice pointing at a condition, test or result
// the page doesn't define. Cross references are by name only, and nothing
// validates them at parse time, so this is where a dangling name surfaces.
var ErrMissingLink = errors.New("page element not found")

var keywordTag = regexp.MustCompile(`\[([^\[\]]*)\]`)

// FillText substitutes every bracketed keyword in free text with the
// matching record value or name value. Unlike expression evaluation, an
// unknown keyword in story text fails loudly: a typo here would otherwise
// print garbage at the player.
func FillText(text string, records map[string]*adventure.Record, names map[string]*adventure.Name) (string, error) {
	var missing string
	filled := keywordTag.ReplaceAllStringFunc(text, func(match string) string {
		keyword := strings.TrimSpace(match[1 : len(match)-1])
		if rec, ok := records[keyword]; ok {
			return rec.ValueAsString()
		}
		if name, ok := names[keyword]; ok {
			return name.Value
		}
		if missing == "" {
			missing = keyword
		}
		return match
	})
	if missing != "" {
		return "", fmt.Errorf("keyword %q: %w", missing, adventure.ErrMissingRecord)
	}
	return filled, nil
}

// ChoiceView is one rendered choice: the text after keyword substitution
// and whether its condition currently holds.
type ChoiceView struct {
	Text    string
	Enabled bool
}

// RenderChoices resolves every choice on the page: substituting keywords in
// the text and evaluating the gating condition where one is named. Choices
// without a condition are always enabled. Conditions consume generator
// state in choice order.
func RenderChoices(page *adventure.Page, records map[string]*adventure.Record, names map[string]*adventure.Name, rand *evaluation.Random) ([]ChoiceView, error) {
	views := make([]ChoiceView, len(page.Choices))
	for i, choice := range page.Choices {
		text, err := FillText(choice.Text, records, names)
		if err != nil {
			return nil, fmt.Errorf("choice %d: %w", i, err)
		}
		views[i] = ChoiceView{Text: text, Enabled: true}

		if choice.Condition == "" {
			continue
		}
		cond, ok := page.Conditions[choice.Condition]
		if !ok {
			return nil, fmt.Errorf("choice %d: condition %q: %w", i, choice.Condition, ErrMissingLink)
		}
		enabled, err := evaluation.EvaluateAndCompare(cond.ExpressionL, cond.ExpressionR, cond.Comparison, records, rand)
		if err != nil {
			return nil, fmt.Errorf("condition %q: %w", cond.Name, err)
		}
		views[i].Enabled = enabled
	}
	return views, nil
}

// EvaluateTest resolves a randomized check to the name of the result to
// follow: success when the comparison holds, failure otherwise.
func EvaluateTest(t *adventure.Test, records map[string]*adventure.Record, rand *evaluation.Random) (string, error) {
	ok, err := evaluation.EvaluateAndCompare(t.ExpressionL, t.ExpressionR, t.Comparison, records, rand)
	if err != nil {
		return "", fmt.Errorf("test %q: %w", t.Name, err)
	}
	if ok {
		return t.SuccessResult, nil
	}
	return t.FailureResult, nil
}

// ApplyResult evaluates each side effect against the current records and
// writes it back: record keys get the evaluated number, name keys get the
// keyword-substituted text. It returns the page to move to. Side effects
// apply in sorted key order so dice inside them consume generator state
// deterministically.
func ApplyResult(res *adventure.StoryResult, records map[string]*adventure.Record, names map[string]*adventure.Name, rand *evaluation.Random) (string, error) {
	keys := make([]string, 0, len(res.SideEffects))
	for key := range res.SideEffects {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		expr := res.SideEffects[key]
		if rec, ok := records[key]; ok {
			value, err := evaluation.Evaluate(expr, records, rand)
			if err != nil {
				return "", fmt.Errorf("result %q: effect %q: %w", res.Name, key, err)
			}
			rec.Value = value
			continue
		}
		if name, ok := names[key]; ok {
			value, err := FillText(expr, records, names)
			if err != nil {
				return "", fmt.Errorf("result %q: effect %q: %w", res.Name, key, err)
			}
			name.Value = value
			continue
		}
		return "", fmt.Errorf("result %q: effect target %q: %w", res.Name, key, adventure.ErrMissingRecord)
	}
	return res.NextPage, nil
}
