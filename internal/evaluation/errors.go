package evaluation

import "errors"

// Evaluation failures are reported through these sentinels. Unknown record
// names are not an error here, they evaluate to zero; the strict behavior
// for free text lives in the story interpreter instead.
var (
	// ErrDivisionByZero reports a division whose right side evaluated to zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrNotANumber reports an operand that is neither dice notation nor an integer.
	ErrNotANumber = errors.New("not a number")
	// ErrInvalidDieExpression reports a die roll that doesn't split into amount and sides.
	ErrInvalidDieExpression = errors.New("invalid die expression")
	// ErrMissingDicePoolEvaluator reports a dice pool without its threshold part.
	ErrMissingDicePoolEvaluator = errors.New("missing dice pool evaluator")
)
