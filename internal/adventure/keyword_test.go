package adventure

import "testing"

func TestIsKeywordValid(t *testing.T) {
	valid := []string{"courage", "strength check", "torch_2", "a b c"}
	for _, raw := range valid {
		if !IsKeywordValid(raw) {
			t.Errorf("%q should be a valid keyword", raw)
		}
	}

	invalid := []string{"", " ", "half [bracket", "semi;colon", "dash-ed", "trailing "}
	for _, raw := range invalid {
		if IsKeywordValid(raw) {
			t.Errorf("%q should not be a valid keyword", raw)
		}
	}
}

func TestMakeKeyword(t *testing.T) {
	if got := MakeKeyword(" courage "); got != "[courage]" {
		t.Errorf("MakeKeyword trimmed form = %q", got)
	}
}

func TestIsKeywordPresent(t *testing.T) {
	text := "Your resolve sits at [ courage ] today."
	if !IsKeywordPresent(text, "courage") {
		t.Errorf("whitespace inside the brackets should still match")
	}
	if IsKeywordPresent("plain courage, no brackets", "courage") {
		t.Errorf("bare substrings should not count as present")
	}
}

func TestRenameKeyword(t *testing.T) {
	text := "courage fails, but [courage] and [ courage ] update"
	got := RenameKeyword(text, "courage", "bravery")
	want := "courage fails, but [bravery] and [bravery] update"
	if got != want {
		t.Errorf("RenameKeyword = %q, want %q", got, want)
	}
}
