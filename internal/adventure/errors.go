package adventure

import (
	"errors"
	"fmt"
)

// Parsing failures are reported through these sentinels so callers can match
// the cause with errors.Is after any amount of wrapping.
var (
	// ErrValueNaN reports a field that must hold a number but does not parse as one.
	ErrValueNaN = errors.New("value is not a number")
	// ErrIncorrectElementCount reports a tagged line with the wrong number of `;` separated parts.
	ErrIncorrectElementCount = errors.New("incorrect element count")
	// ErrElementPairMissing reports a story result with a keyword missing its value.
	ErrElementPairMissing = errors.New("element pair missing")
	// ErrInvalid reports an entity that parsed structurally but breaks its validity rules.
	ErrInvalid = errors.New("invalid entity")
	// ErrMissingRecord reports a bracketed keyword that matches no record or name.
	ErrMissingRecord = errors.New("missing record")
)

// IncompletePageError reports a page document that was read to the end but
// does not satisfy the playable invariant. The partially built page is kept
// so editors can show what did load.
type IncompletePageError struct {
	Page *Page
}

func (e *IncompletePageError) Error() string {
	return fmt.Sprintf("page %q is incomplete and can't be played", e.Page.Title)
}
