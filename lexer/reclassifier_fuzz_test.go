package lexer

import (
	"testing"
)

var fuzzSeeds = []string{
	// Rule triggers
	":foo", "::foo", ":ns/name", ":foo/", ":", "::",
	"(foo", "( foo", "( :foo", "(foo.bar", "(foo:bar)", "(", "((", "(:",
	"'foo", "'foo.bar", "'a.b/c:d", "' ; c\n foo", "'(a b)", "'",
	"#myTag", "#inst \"x\"", "#\"re\"", "#(inc %)", "#{1 2}", "#", "##Inf",
	"^String", "^ String", "^:private", "^{:a 1}", "#^Integer", "^",

	// Forms
	"(ns app.core\n  (:require [clojure.string :as str]))",
	"(defn f [x] (.toUpperCase ^String x))",
	"`(let [x# ~a] ~@body)",
	"#?(:clj (Math/abs -1) :cljs (js/Math.abs -1))",
	"{:a 1, :b 2/3, :c 0xFF, :d 2r101, :e \\newline}",
	"#_(ignored form) @atom #'var (.-field obj)",

	// Edge cases
	"", " ", "\n", ";", "\"unterminated", "\\", "|", "\xff", "λ",
}

// checkCover verifies that the emitted tokens tile [0, len(src)) exactly and
// that every boundary is also a primitive token boundary.
func checkCover(t *testing.T, src []byte, primitive, emitted []Token) {
	t.Helper()

	starts := make(map[int]bool, len(primitive))
	ends := make(map[int]bool, len(primitive))
	for _, tok := range primitive {
		starts[tok.Start] = true
		ends[tok.End] = true
	}

	pos := 0
	for i, tok := range emitted {
		if tok.Type == EOF {
			if i != len(emitted)-1 {
				t.Errorf("EOF at %d is not the last token", i)
			}
			break
		}
		if tok.Start != pos {
			t.Errorf("token %d (%s) starts at %d, want %d", i, tok.Type, tok.Start, pos)
		}
		if tok.End <= tok.Start {
			t.Errorf("token %d (%s) is empty: [%d,%d)", i, tok.Type, tok.Start, tok.End)
		}
		if !starts[tok.Start] || !ends[tok.End] {
			t.Errorf("token %d (%s) [%d,%d) splits a primitive token", i, tok.Type, tok.Start, tok.End)
		}
		pos = tok.End
	}
	if pos != len(src) {
		t.Errorf("emitted tokens cover [0,%d), want [0,%d)", pos, len(src))
	}
	if last := emitted[len(emitted)-1]; last.Type != EOF {
		t.Errorf("last token must be EOF, got %s", last.Type)
	}
}

func TestReclassifierCover(t *testing.T) {
	for _, seed := range fuzzSeeds {
		src := []byte(seed)
		primitive := NewScanner(src, "test").ScanAll()
		checkCover(t, src, primitive, Tokenize(src, "test"))
	}
}

func FuzzReclassifier(f *testing.F) {
	for _, seed := range fuzzSeeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("Reclassifier panicked on input %q: %v", data, r)
			}
		}()

		primitive := NewScanner(data, "fuzz").ScanAll()
		checkCover(t, data, primitive, primitive)

		emitted := Tokenize(data, "fuzz")
		checkCover(t, data, primitive, emitted)

		again := Tokenize(data, "fuzz")
		if len(again) != len(emitted) {
			t.Fatalf("non-deterministic token count: %d vs %d", len(emitted), len(again))
		}
		for i := range emitted {
			if emitted[i] != again[i] {
				t.Fatalf("non-deterministic token %d: %v vs %v", i, emitted[i], again[i])
			}
		}
	})
}

func BenchmarkTokenize(b *testing.B) {
	src := []byte(`(ns bench.core
  (:require [clojure.string :as str]))

(defn ^String greet
  "Greets someone."
  [{:keys [name title] :or {title "friend"}}]
  (str/join " " ['hello (or name title) #inst "2024-01-01" :done 1/2 0xFF]))
`)
	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Tokenize(src, "bench")
	}
}
