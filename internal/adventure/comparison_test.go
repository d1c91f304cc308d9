package adventure

import "testing"

func TestComparisonFrom(t *testing.T) {
	cases := []struct {
		token string
		want  Comparison
	}{
		{">", Greater},
		{">=", GreaterEqual},
		{"<", Less},
		{"<=", LessEqual},
		{"=", Equal},
		{"==", Equal},
		{"!", NotEqual},
		{"!=", NotEqual},
		{" > ", Greater},
		// Unrecognized tokens fall back to LessEqual.
		{"", LessEqual},
		{"maybe", LessEqual},
		{"=<", LessEqual},
	}
	for _, c := range cases {
		if got := ComparisonFrom(c.token); got != c.want {
			t.Errorf("ComparisonFrom(%q) = %v, want %v", c.token, got, c.want)
		}
	}
}

func TestComparisonStringRoundTrip(t *testing.T) {
	for _, c := range []Comparison{Greater, GreaterEqual, Less, LessEqual, Equal, NotEqual} {
		if got := ComparisonFrom(c.String()); got != c {
			t.Errorf("ComparisonFrom(%q) = %v, want %v", c.String(), got, c)
		}
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		comp     Comparison
		lhs, rhs int
		want     bool
	}{
		{Greater, 5, 3, true},
		{Greater, 3, 3, false},
		{GreaterEqual, 3, 3, true},
		{Less, 2, 3, true},
		{LessEqual, 3, 3, true},
		{LessEqual, 4, 3, false},
		{Equal, 3, 3, true},
		{Equal, 3, 4, false},
		{NotEqual, 3, 4, true},
		{NotEqual, 3, 3, false},
	}
	for _, c := range cases {
		if got := c.comp.Compare(c.lhs, c.rhs); got != c.want {
			t.Errorf("%v.Compare(%d, %d) = %v, want %v", c.comp, c.lhs, c.rhs, got, c.want)
		}
	}
}
