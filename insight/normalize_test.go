package insight

import (
	"testing"

	"github.com/leeguhn/crawler/playstore"
)

func TestNormalize_English(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Great app!", "Great app!"},
		{"too   many\n\nspaces", "too many spaces"},
		{"emoji 😀 and symbols @#$ removed", "emoji and symbols removed"},
		{"keeps . , ! ? and_underscores", "keeps . , ! ? and_underscores"},
	}
	for _, c := range cases {
		if got := Normalize(c.in, playstore.LocaleEN); got != c.want {
			t.Errorf("Normalize(%q): got %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalize_KoreanKeepsHangul(t *testing.T) {
	got := Normalize("정말 좋아요! ★★★", playstore.LocaleKR)
	if got != "정말 좋아요!" {
		t.Errorf("got %q, want %q", got, "정말 좋아요!")
	}

	// The english rules strip Hangul entirely.
	if got := Normalize("정말 good", playstore.LocaleEN); got != "good" {
		t.Errorf("en locale: got %q, want %q", got, "good")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Great app, works fine!",
		"emoji 😀 mixed 한글 text...",
		"  spaced   out  ",
	}
	for _, in := range inputs {
		for _, locale := range []playstore.Locale{playstore.LocaleEN, playstore.LocaleKR} {
			once := Normalize(in, locale)
			twice := Normalize(once, locale)
			if once != twice {
				t.Errorf("Normalize(%q, %s) not idempotent: %q != %q", in, locale, once, twice)
			}
		}
	}
}
