package adventure

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Adventure is the top level story document. It holds the metadata shown on
// the selection screen plus the record and name tables the story pages
// reference by keyword. Path points at whatever storage the document came
// from; the core never touches it beyond carrying it around.
type Adventure struct {
	Title       string
	Description string
	Path        string
	Start       string
	Records     map[string]*Record
	Names       map[string]*Name
}

// Record is a named integer story variable, optionally grouped by category.
type Record struct {
	Category string
	Name     string
	Value    int
}

// Name is a named string story variable used for text substitution.
type Name struct {
	Keyword string
	Value   string
}

// NewAdventure creates an empty adventure with initialized tables.
func NewAdventure() *Adventure {
	return &Adventure{
		Records: make(map[string]*Record),
		Names:   make(map[string]*Name),
	}
}

// ParseAdventure reads an adventure document line by line. Lines starting
// with a known tag are handed to the matching entity parser; untagged lines
// following a description tag are appended to the description with no
// separator in between. The path argument is stored as-is.
func ParseAdventure(text, path string) (*Adventure, error) {
	adv := NewAdventure()

	continuation := false
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "title:"):
			continuation = false
			adv.Title = tagRemainder(line, "title:")
		case strings.HasPrefix(line, "description:"):
			continuation = true
			adv.Description = tagRemainder(line, "description:")
		case strings.HasPrefix(line, "start:"):
			continuation = false
			adv.Start = tagRemainder(line, "start:")
		case strings.HasPrefix(line, "record:"):
			continuation = false
			rec, err := ParseRecord(tagRemainder(line, "record:"))
			if err != nil {
				return nil, fmt.Errorf("record line %q: %w", line, err)
			}
			adv.Records[rec.Name] = rec
		case strings.HasPrefix(line, "name:"):
			continuation = false
			name, err := ParseName(tagRemainder(line, "name:"))
			if err != nil {
				return nil, fmt.Errorf("name line %q: %w", line, err)
			}
			adv.Names[name.Keyword] = name
		default:
			if continuation {
				adv.Description += line
			}
		}
	}
	adv.Path = path

	if !adv.IsValid() {
		return nil, fmt.Errorf("adventure %q: %w", adv.Title, ErrInvalid)
	}
	return adv, nil
}

// IsValid reports the bare minimum for a loaded adventure: a title and a
// storage path.
func (a *Adventure) IsValid() bool {
	return a.Title != "" && a.Path != ""
}

// IsPlayable additionally requires a start page. Whether the backing store
// actually holds that page is for the library layer to verify.
func (a *Adventure) IsPlayable() bool {
	return a.IsValid() && a.Start != ""
}

// Serialize renders the adventure back into its document form. Records and
// names are emitted in sorted key order; parse(serialize(a)) reproduces all
// fields except Path.
func (a *Adventure) Serialize() string {
	var b strings.Builder
	fmt.Fprintf(&b, "title: %s\n", a.Title)
	fmt.Fprintf(&b, "description: %s\n", a.Description)
	fmt.Fprintf(&b, "start: %s\n", a.Start)
	for _, key := range sortedKeys(a.Records) {
		fmt.Fprintf(&b, "record: %s\n", a.Records[key].Serialize())
	}
	for _, key := range sortedKeys(a.Names) {
		fmt.Fprintf(&b, "name: %s\n", a.Names[key].Serialize())
	}
	return b.String()
}

// UpdateRecord re-keys a record under a new name. The record table key and
// the record's own name stay in sync; substituting the keyword in page text
// is Page.Rename's job.
func (a *Adventure) UpdateRecord(old, new string) error {
	rec, ok := a.Records[old]
	if !ok {
		return fmt.Errorf("record %q: %w", old, ErrMissingRecord)
	}
	delete(a.Records, old)
	rec.Name = new
	a.Records[new] = rec
	return nil
}

// UpdateName re-keys a name entry, mirroring UpdateRecord.
func (a *Adventure) UpdateName(old, new string) error {
	name, ok := a.Names[old]
	if !ok {
		return fmt.Errorf("name %q: %w", old, ErrMissingRecord)
	}
	delete(a.Names, old)
	name.Keyword = new
	a.Names[new] = name
	return nil
}

// ParseRecord reads the remainder of a record line. One part is just the
// name. With two parts the second is either the starting value or, when it
// isn't numeric, the category. Three parts spell out name, category and
// value in full.
func ParseRecord(text string) (*Record, error) {
	parts := splitParts(text)
	switch len(parts) {
	case 1:
		return &Record{Name: parts[0]}, nil
	case 2:
		if v, err := strconv.Atoi(parts[1]); err == nil {
			return &Record{Name: parts[0], Value: v}, nil
		}
		return &Record{Name: parts[0], Category: parts[1]}, nil
	case 3:
		v, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, fmt.Errorf("record %q value %q: %w", parts[0], parts[2], ErrValueNaN)
		}
		return &Record{Name: parts[0], Category: parts[1], Value: v}, nil
	default:
		return nil, fmt.Errorf("record needs 1 to 3 parts, got %d: %w", len(parts), ErrIncorrectElementCount)
	}
}

// Serialize renders the record as a record line remainder.
func (r *Record) Serialize() string {
	if r.Category == "" {
		return fmt.Sprintf("%s; %d;", r.Name, r.Value)
	}
	return fmt.Sprintf("%s; %s; %d;", r.Name, r.Category, r.Value)
}

// ValueAsString returns the record value in the decimal form used for
// substitution into expressions and story text.
func (r *Record) ValueAsString() string {
	return strconv.Itoa(r.Value)
}

// ParseName reads the remainder of a name line: a keyword with an optional
// starting value.
func ParseName(text string) (*Name, error) {
	parts := splitParts(text)
	switch len(parts) {
	case 1:
		return &Name{Keyword: parts[0]}, nil
	case 2:
		return &Name{Keyword: parts[0], Value: parts[1]}, nil
	default:
		return nil, fmt.Errorf("name needs 1 or 2 parts, got %d: %w", len(parts), ErrIncorrectElementCount)
	}
}

// Serialize renders the name as a name line remainder.
func (n *Name) Serialize() string {
	if n.Value == "" {
		return fmt.Sprintf("%s;", n.Keyword)
	}
	return fmt.Sprintf("%s; %s;", n.Keyword, n.Value)
}

// tagRemainder strips one leading tag from a line and trims the rest.
func tagRemainder(line, tag string) string {
	return strings.TrimSpace(strings.Replace(line, tag, "", 1))
}

// splitParts breaks a line remainder on `;`, trimming every part and
// dropping empty ones so trailing separators don't count.
func splitParts(text string) []string {
	var parts []string
	for _, p := range strings.Split(text, ";") {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
