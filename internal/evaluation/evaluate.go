// Package evaluation parses and evaluates the arithmetic and dice notation
// embedded in adventure documents. Expressions are resolved in a single
// left-to-right pass without building a tree: tokens split inclusively on
// their operators, each token resolves to an integer operand, and a
// priority-respecting reduction folds the operands together.
package evaluation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/purrie/adventure-book-sub000/internal/adventure"
)

// operation is one resolved operand together with the operator that binds
// it to the next one. Priority 2 is multiplicative, 1 additive, 0 marks the
// final token.
type operation struct {
	value    int
	op       byte
	priority int
}

// Evaluate resolves an expression against the record table and the dice
// engine. Unknown records substitute as zero rather than failing; dice
// outcomes consume generator state in token order, so evaluation order is
// part of the contract.
func Evaluate(exp string, records map[string]*adventure.Record, rand *Random) (int, error) {
	tokens := splitInclusive(exp, "+-*/")
	if len(tokens) == 0 {
		return 0, fmt.Errorf("empty expression: %w", ErrNotANumber)
	}

	var ops []operation
	for _, tok := range tokens {
		if strings.TrimSpace(tok) == "-" {
			// A bare minus right after an operator negates whatever
			// follows, as in 1d20*-1.
			ops = append(ops, operation{value: -1, op: '*', priority: 2})
			continue
		}

		op := byte(' ')
		priority := 0
		switch tok[len(tok)-1] {
		case '+':
			op, priority = '+', 1
		case '-':
			op, priority = '-', 1
		case '*':
			op, priority = '*', 2
		case '/':
			op, priority = '/', 2
		}
		body := tok
		if priority > 0 {
			body = body[:len(body)-1]
		}
		body = strings.TrimSpace(body)

		body = substituteRecords(body, records)

		var value int
		var err error
		if strings.ContainsAny(body, "lh") {
			value, err = foldLowHigh(body, rand)
		} else {
			value, err = evalOperand(body, rand)
		}
		if err != nil {
			return 0, err
		}
		ops = append(ops, operation{value: value, op: op, priority: priority})
	}

	return reduce(ops)
}

// EvaluateAndCompare resolves both expressions, left side first since each
// evaluation advances the generator, and applies the comparison.
func EvaluateAndCompare(lhe, rhe string, comp adventure.Comparison, records map[string]*adventure.Record, rand *Random) (bool, error) {
	l, err := Evaluate(lhe, records, rand)
	if err != nil {
		return false, err
	}
	r, err := Evaluate(rhe, records, rand)
	if err != nil {
		return false, err
	}
	return comp.Compare(l, r), nil
}

// substituteRecords replaces every bracketed record reference with the
// record's current value. A reference that matches no record becomes zero;
// the evaluator is deliberately lenient here where the story interpreter is
// not.
func substituteRecords(body string, records map[string]*adventure.Record) string {
	for {
		start := strings.IndexByte(body, '[')
		if start < 0 {
			break
		}
		end := strings.IndexByte(body, ']')
		if end < start {
			break
		}
		name := strings.TrimSpace(body[start+1 : end])
		value := "0"
		if rec, ok := records[name]; ok {
			value = rec.ValueAsString()
		}
		body = body[:start] + value + body[end+1:]
	}
	return body
}

// foldLowHigh resolves a chain of sub-expressions joined by the take-lower
// and take-higher markers. Pairs fold left to right, min for l and max for
// h, with each intermediate result re-entering the chain until one value
// remains.
func foldLowHigh(body string, rand *Random) (int, error) {
	queue := splitInclusive(body, "lh")
	if len(queue) < 2 {
		return 0, fmt.Errorf("take lower/higher needs two sides, got %q: %w", body, ErrInvalidDieExpression)
	}
	for {
		this, next := queue[0], queue[1]
		queue = queue[2:]

		hiOrLo := this[len(this)-1]
		hiOrLoNext := next[len(next)-1]
		this = this[:len(this)-1]
		if len(queue) > 0 {
			next = next[:len(next)-1]
		}

		thisValue, err := evalOperand(this, rand)
		if err != nil {
			return 0, err
		}
		nextValue, err := evalOperand(next, rand)
		if err != nil {
			return 0, err
		}

		var folded int
		if hiOrLo == 'l' {
			folded = min(thisValue, nextValue)
		} else {
			folded = max(thisValue, nextValue)
		}

		if len(queue) == 0 {
			return folded, nil
		}
		queue = append([]string{fmt.Sprintf("%d%c", folded, hiOrLoNext)}, queue...)
	}
}

// evalOperand turns a single token body into an integer: dice notation when
// a d or x marker is present, a plain integer literal otherwise.
func evalOperand(body string, rand *Random) (int, error) {
	var typ byte
	switch {
	case strings.ContainsRune(body, 'd'):
		typ = 'd'
	case strings.ContainsRune(body, 'x'):
		typ = 'x'
	default:
		v, err := strconv.Atoi(strings.TrimSpace(body))
		if err != nil {
			return 0, fmt.Errorf("%q doesn't appear to be a valid number: %w", body, ErrNotANumber)
		}
		return v, nil
	}

	var pool byte
	if strings.ContainsRune(body, 'p') {
		pool = 'p'
	} else if strings.ContainsRune(body, 'q') {
		pool = 'q'
	}
	return evalDie(body, typ, pool, rand)
}

// evalDie resolves dice notation. Plain rolls need exactly amount and
// sides; pools need the threshold as a third part. Every part must be a
// positive integer by the time it reaches the generator.
func evalDie(body string, typ, pool byte, rand *Random) (int, error) {
	cut := string(typ)
	if pool != 0 {
		cut += string(pool)
	}

	parts := splitAny(body, cut)
	nums := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, fmt.Errorf("couldn't process %q in %q: %w", p, body, ErrNotANumber)
		}
		nums[i] = v
	}

	if pool == 0 {
		if len(nums) != 2 {
			return 0, fmt.Errorf("die roll needs an expression like '1d6', got %q: %w", body, ErrInvalidDieExpression)
		}
	} else {
		if len(nums) != 3 {
			return 0, fmt.Errorf("dice pool needs an expression like '4d6p4', got %q: %w", body, ErrMissingDicePoolEvaluator)
		}
	}
	for _, n := range nums {
		if n <= 0 {
			return 0, fmt.Errorf("dice numbers must be positive in %q: %w", body, ErrInvalidDieExpression)
		}
	}

	switch typ {
	case 'd':
		switch pool {
		case 0:
			return rand.Die(nums[0], nums[1]), nil
		case 'p':
			return rand.Pool(nums[0], nums[1], nums[2]), nil
		default:
			return rand.PoolReverse(nums[0], nums[1], nums[2]), nil
		}
	default:
		return rand.DieExplode(nums[0], nums[1]), nil
	}
}

// reduce folds the operand list left to right, combining a pair whenever
// the left side's priority is at least the right side's and wrapping back
// to the start otherwise. That yields conventional multiplicative-first
// grouping without an explicit tree.
func reduce(ops []operation) (int, error) {
	i := 0
	for {
		if len(ops) == 1 {
			return ops[0].value, nil
		}
		if i >= len(ops)-1 {
			i = 0
		}
		l, r := ops[i], ops[i+1]
		if l.priority < r.priority {
			i++
			continue
		}

		var value int
		switch l.op {
		case '+':
			value = l.value + r.value
		case '-':
			value = l.value - r.value
		case '*':
			value = l.value * r.value
		case '/':
			if r.value == 0 {
				return 0, fmt.Errorf("cannot divide %d by zero: %w", l.value, ErrDivisionByZero)
			}
			value = l.value / r.value
		default:
			value = r.value
		}
		ops[i] = operation{value: value, op: r.op, priority: r.priority}
		ops = append(ops[:i+1], ops[i+2:]...)
	}
}

// splitInclusive breaks s on any of the separator bytes, keeping each
// separator attached to the end of its segment. A trailing segment without
// a separator is kept; an empty input yields nothing.
func splitInclusive(s, seps string) []string {
	var parts []string
	last := 0
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(seps, s[i]) >= 0 {
			parts = append(parts, s[last:i+1])
			last = i + 1
		}
	}
	if last < len(s) {
		parts = append(parts, s[last:])
	}
	return parts
}

// splitAny breaks s on any of the separator bytes, keeping empty segments
// so a malformed token like "d6" still reports which part failed.
func splitAny(s, seps string) []string {
	var parts []string
	last := 0
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(seps, s[i]) >= 0 {
			parts = append(parts, s[last:i])
			last = i + 1
		}
	}
	return append(parts, s[last:])
}
