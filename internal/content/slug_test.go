package content

import (
	"strings"
	"testing"

	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

func TestNormalizeSlug(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{raw: "react-vue", want: "react-vue", ok: true},
		{raw: "c[-]-java", want: "c#-java", ok: true},
		{raw: "c%5B-%5D-java", want: "c#-java", ok: true},
		{raw: "f[-]-c[-]", want: "f#-c#", ok: true},
		{raw: "ruby%20on%20rails", want: "ruby on rails", ok: true},
		{raw: "", ok: false},
		{raw: "%zz", ok: false},
		{raw: "..", ok: false},
		{raw: "a%2Fb", ok: false},
		{raw: `a\b`, ok: false},
	}

	for _, tc := range cases {
		got, ok := NormalizeSlug(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("NormalizeSlug(%q) = %q, %v; want %q, %v", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestReverseSlug(t *testing.T) {
	cases := map[string]string{
		"react-vue": "vue-react",
		"a-b-c":     "c-b-a",
		"single":    "single",
		"java-java": "java-java",
	}
	for in, want := range cases {
		if got := ReverseSlug(in); got != want {
			t.Fatalf("ReverseSlug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEncodeSlug(t *testing.T) {
	cases := []struct {
		title    string
		category interfaces.Category
		want     string
	}{
		{title: "Python vs JavaScript", category: interfaces.CategoryArticle, want: "Python-JavaScript"},
		{title: "C# vs Java", category: interfaces.CategoryArticle, want: "C[-]-Java"},
		{title: "Ruby on Rails", category: interfaces.CategoryStack, want: "Ruby%20on%20Rails"},
		{title: "Functional Programming", category: interfaces.CategoryParadigm, want: "functional%20programming"},
	}

	for _, tc := range cases {
		if got := EncodeSlug(tc.title, tc.category); got != tc.want {
			t.Fatalf("EncodeSlug(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestEncodeSlugRoundTrip(t *testing.T) {
	for _, title := range []string{"C# vs Java", "F# vs OCaml", "Ruby on Rails", "Node.js vs Deno"} {
		encoded := EncodeSlug(title, interfaces.CategoryArticle)
		decoded, ok := NormalizeSlug(encoded)
		if !ok {
			t.Fatalf("NormalizeSlug(%q) rejected", encoded)
		}
		want := strings.Replace(title, " vs ", "-", 1)
		if decoded != want {
			t.Fatalf("round trip %q: got %q want %q", title, decoded, want)
		}
	}
}

func TestEscapeSlug(t *testing.T) {
	if got := EscapeSlug("c#-java"); got != "c[-]-java" {
		t.Fatalf("EscapeSlug = %q", got)
	}
	if got, _ := NormalizeSlug(EscapeSlug("ruby on rails")); got != "ruby on rails" {
		t.Fatalf("EscapeSlug round trip = %q", got)
	}
}
