package validate

import "testing"

func TestSymbolValid(t *testing.T) {
	for _, s := range []string{"🦠", "🎯", "🗡️", "💡"} {
		if v := Symbol(s); !v.Valid {
			t.Fatalf("%q rejected: %s", s, v.Error)
		}
	}
}

func TestSymbolEmpty(t *testing.T) {
	if v := Symbol(""); v.Valid {
		t.Fatal("empty symbol accepted")
	}
}

func TestSymbolWhitespace(t *testing.T) {
	if v := Symbol("🦠 "); v.Valid {
		t.Fatal("symbol with whitespace accepted")
	}
}

func TestSymbolMultipleGlyphs(t *testing.T) {
	if v := Symbol("🦠🦠"); v.Valid {
		t.Fatal("two glyphs accepted")
	}
}

func TestSymbolPlainText(t *testing.T) {
	for _, s := range []string{"a", "ab", "1"} {
		if v := Symbol(s); v.Valid {
			t.Fatalf("%q accepted", s)
		}
	}
}

func TestSymbolZWJSequenceIsOverridable(t *testing.T) {
	v := Symbol("👨‍💻")
	if v.Valid {
		t.Fatal("ZWJ sequence accepted outright")
	}
	if !v.Overridable {
		t.Fatal("ZWJ sequence should be overridable")
	}
}

func TestSymbolInvisible(t *testing.T) {
	if v := Symbol("\u200b"); v.Valid {
		t.Fatal("zero-width space accepted")
	}
}

func TestSymbolStructuralMarkersReserved(t *testing.T) {
	for _, s := range []string{"📂", "🗂️", "📑"} {
		if v := Symbol(s); v.Valid {
			t.Fatalf("reserved marker %q accepted", s)
		}
	}
}
