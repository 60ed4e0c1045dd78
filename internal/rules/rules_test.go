package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codex/internal/diag"
)

func line(text string) Line {
	return Line{Number: 1, Raw: text, Clean: text}
}

type checkCase struct {
	text string
	code diag.Code // UnknownCode means no finding
	col  int
	msg  string // substring, optional
}

func runChecker(t *testing.T, c Checker, cases []checkCase) {
	t.Helper()
	for _, tc := range cases {
		got := c.Check(line(tc.text))
		if tc.code == diag.UnknownCode {
			if len(got) != 0 {
				t.Errorf("%s %q: expected nothing, got %+v", c.Name(), tc.text, got)
			}
			continue
		}
		if len(got) != 1 {
			t.Errorf("%s %q: expected one finding, got %d", c.Name(), tc.text, len(got))
			continue
		}
		if got[0].Code != tc.code {
			t.Errorf("%s %q: want %s, got %s", c.Name(), tc.text, tc.code.ID(), got[0].Code.ID())
		}
		if tc.col != 0 && got[0].Column != tc.col {
			t.Errorf("%s %q: want column %d, got %d", c.Name(), tc.text, tc.col, got[0].Column)
		}
		if tc.msg != "" && !strings.Contains(got[0].Message, tc.msg) {
			t.Errorf("%s %q: message %q lacks %q", c.Name(), tc.text, got[0].Message, tc.msg)
		}
	}
}

func TestMagicNumber(t *testing.T) {
	decl := func(w string) bool { return w == "int" || w == "const" }
	runChecker(t, MagicNumber(decl), []checkCase{
		{"x = 42;", diag.StyleMagicNumber, 5, ""},
		{"int arr[] = {1, 2, 3};", diag.UnknownCode, 0, ""},
		{"total = {1, 2, 3};", diag.UnknownCode, 0, ""},
		{"y = x1 + x2;", diag.UnknownCode, 0, ""},
		{"if (n > 10) {", diag.StyleMagicNumber, 9, ""},
		{"call(7);", diag.StyleMagicNumber, 6, ""},
		{`puts("= 5");`, diag.UnknownCode, 0, ""},
		{"#define LIMIT (4 + 4)", diag.StyleMagicNumber, 16, ""},
		{"#define X (5)", diag.StyleMagicNumber, 12, ""},
		{"#define BUFSZ 512", diag.UnknownCode, 0, ""},
		{"const int N = 20;", diag.UnknownCode, 0, ""},
		{"int y = (20);", diag.StyleMagicNumber, 10, ""},
		{"int y =20;", diag.StyleMagicNumber, 8, ""},
		{"buf[10] = c;", diag.UnknownCode, 0, ""},
	})
}

func TestLegacy(t *testing.T) {
	tb := Default()
	runChecker(t, Legacy(tb), []checkCase{
		{"static inline int f(void);", diag.LegacyKeyword, 1, "'inline'"},
		{"_Bool ok;", diag.LegacyKeyword, 1, "_Bool type"},
		{"char *restrict p;", diag.LegacyKeyword, 1, "'restrict'"},
		{"int inlined;", diag.UnknownCode, 0, ""},
		{"for (int i = 0; i < 5; i++) {", diag.LegacyForDeclaration, 1, ""},
		{"for (unsigned k = 0; k; k--)", diag.LegacyForDeclaration, 1, ""},
		{"for (i = 0; i < n; i++) {", diag.UnknownCode, 0, ""},
		{"struct Point p = { .x = 1, .y = 2 };", diag.LegacyDesignatedInit, 1, "designated initializer found"},
		{"p = (int[]){1, 2};", diag.LegacyCompoundLiteral, 1, ""},
		{"#define LOG(...) printf(__VA_ARGS__)", diag.LegacyVariadicMacro, 1, ""},
		{"    char data[];", diag.LegacyFlexibleArray, 1, ""},
		{"n = snprintf(buf, 8, \"%d\", v);", diag.LegacyStdlibFunction, 1, ""},
		{"x = around(3);", diag.UnknownCode, 0, ""},
		{"#include <stdint.h>", diag.LegacyHeader, 1, "header file found"},
		{"#include <stdio.h>", diag.UnknownCode, 0, ""},
		{`puts("inline text");`, diag.UnknownCode, 0, ""},
	})
}

func TestModern(t *testing.T) {
	tb := Default()
	runChecker(t, Modern(tb), []checkCase{
		{"static inline int f(void);", diag.ModernKeyword, 1, "ensure your compiler supports C99"},
		{"for (int i = 0; i < 5; i++) {", diag.ModernFeature, 1, ""},
		{"#include <stdbool.h>", diag.ModernHeader, 1, ""},
		{"int x;", diag.UnknownCode, 0, ""},
	})
	got := Modern(tb).Check(line("restrict"))
	if len(got) != 1 || !got[0].WithExcerpt {
		t.Fatalf("modern findings carry an excerpt")
	}
}

func TestVendorKeywords(t *testing.T) {
	tb := Default()
	runChecker(t, Keywords(tb, VendorNDK), []checkCase{
		{"__saveds void f(void)", diag.VendorNDKReserved, 1, ""},
		{"void __stkargs g(void)", diag.VendorNDKReserved, 6, ""},
		{"__SAVE_DS__ void f(void)", diag.UnknownCode, 0, ""},
	})
	runChecker(t, Keywords(tb, VendorSASC), []checkCase{
		{"void __stkargs f(void);", diag.VendorSASC, 6, "Use universal syntax '__STDARGS__' instead."},
		{"int x __attribute__((packed));", diag.VendorSASC, 7, "has no direct universal equivalent"},
		{"if (__builtin_expect(x, 0))", diag.VendorSASC, 5, "has no direct universal equivalent"},
		{"__saveds void f(void)", diag.UnknownCode, 0, ""},
	})
	runChecker(t, Keywords(tb, VendorVBCC), []checkCase{
		{"__saveds void f(void)", diag.VendorVBCC, 1, "is incompatible with VBCC. Use universal syntax '__SAVE_DS__'"},
		{"__amigainterrupt void h(void)", diag.UnknownCode, 0, ""},
	})
	runChecker(t, Keywords(tb, VendorDICE), []checkCase{
		{"__amigainterrupt void h(void)", diag.VendorDICE, 1, "is DICE-incompatible. Use universal syntax '__INTERRUPT__'"},
	})
}

func TestPlatform(t *testing.T) {
	tb := Default()
	runChecker(t, Platform(tb, PlatformOptions{PascalCase: true}), []checkCase{
		{"long my_long_var = 12345L;", diag.PlatformType, 1, "(LONG) instead of long"},
		{"unsigned short my_ushort = 100;", diag.PlatformPrimitive, 1, ""},
		{"const char *name;", diag.PlatformType, 1, "CONST_STRPTR"},
		{"USHORT w;", diag.PlatformDeprecated, 1, "use UWORD"},
		{"UWORD w;", diag.UnknownCode, 0, ""},
		{"void test_amiga_naming_convention(void)", diag.PlatformPascalCase, 6, ""},
		{"VOID DoThings(VOID)", diag.UnknownCode, 0, ""},
		{"LONG main(VOID)", diag.UnknownCode, 0, ""},
		{"if (x) helper(y)", diag.UnknownCode, 0, ""},
		{"helper_call(a, b);", diag.UnknownCode, 0, ""},
		{"APTR *p = 0;", diag.PlatformNullPointer, 1, "NULL"},
		{"APTR *p = 0x10;", diag.UnknownCode, 0, ""},
		{"if (*p == 0) return;", diag.UnknownCode, 0, ""},
		{`puts("long story");`, diag.UnknownCode, 0, ""},
	})
	runChecker(t, Platform(tb, PlatformOptions{}), []checkCase{
		{"VOID helper(VOID)", diag.UnknownCode, 0, ""},
	})
}

func TestMemorySafety(t *testing.T) {
	tb := Default()
	runChecker(t, MemorySafety(tb), []checkCase{
		{`strcpy(buffer, "x");`, diag.MemUnsafeFunction, 1, "consider using 'strncpy' instead"},
		{"n = atoi(s);", diag.MemUnsafeFunction, 5, "'strtol'"},
		{"realpath(p, NULL);", diag.MemUnsafeFunction, 1, "second argument"},
		{`sscanf(s, "%s", b);`, diag.MemUnsafeFunction, 1, "'%10s'"},
		{"strncpy(a, b, n);", diag.UnknownCode, 0, ""},
		{`puts("never use gets");`, diag.UnknownCode, 0, ""},
	})
}

func TestLineCommentAndLength(t *testing.T) {
	got := LineComment().Check(Line{Raw: "x; // c", Clean: "x; ", CommentCol: 4})
	if len(got) != 1 || got[0].Column != 4 || got[0].Code != diag.ComLineComment {
		t.Fatalf("unexpected line comment finding %+v", got)
	}
	if LineComment().Check(line("x;")) != nil {
		t.Fatalf("no comment, no finding")
	}

	long := strings.Repeat("a", 257)
	got = LineLength(256).Check(line(long))
	if len(got) != 1 || got[0].Column != 257 {
		t.Fatalf("expected finding at column 257, got %+v", got)
	}
	if LineLength(256).Check(line(long[:256])) != nil {
		t.Fatalf("line at the limit is fine")
	}
}

func TestParseMarker(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"x = 1; /* $CODEX: Magic number found. */", "Magic number found.", true},
		{"// $CODEX:\tTabbed text", "Tabbed text", true},
		{"/* $CODEX: */", "", false},
		{"/* $CODEX: Use Amiga types (UBYTE* or STRPTR) */", "Use Amiga types (UBYTE", true},
		{"no marker here", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseMarker(tc.raw)
		if ok != tc.ok || got != tc.want {
			t.Errorf("%q: want (%q,%v), got (%q,%v)", tc.raw, tc.want, tc.ok, got, ok)
		}
	}
	f := Marker().Check(line("int y; /* $CODEX: expected */"))
	if len(f) != 1 || f[0].Code != diag.MarkerComment || f[0].Message != "expected" {
		t.Fatalf("unexpected marker finding %+v", f)
	}
}

func TestTablesOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.toml")
	content := `c99_keywords = ["_Generic"]

[unsafe]
memcpy = { replacement = "memcpy_s" }
gets = { replacement = "" }
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	tb, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(tb.C99Keywords) != 1 || tb.C99Keywords[0] != "_Generic" {
		t.Fatalf("list must be replaced, got %v", tb.C99Keywords)
	}
	if r := tb.Unsafe["memcpy"]; !r.Has || r.Text != "memcpy_s" {
		t.Fatalf("map entry must be added, got %+v", r)
	}
	if r := tb.Unsafe["gets"]; r.Has {
		t.Fatalf("empty replacement means no replacement, got %+v", r)
	}
	if _, ok := tb.Unsafe["strcpy"]; !ok {
		t.Fatalf("default entries must survive a merge")
	}
	if len(tb.StdlibFunctions) == 0 {
		t.Fatalf("untouched lists keep defaults")
	}
	got := MemorySafety(tb).Check(line("gets(b);"))
	if len(got) != 1 || got[0].Message != "Memory-unsafe function 'gets' found" {
		t.Fatalf("unexpected message %+v", got)
	}
}

func TestTablesRejectUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("nonsense = [\"x\"]\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestDefaultUniversalReplacements(t *testing.T) {
	tb := Default()
	r, ok := tb.UniversalFor("__chip")
	if !ok || !r.Has || r.Text != "__CHIP__" {
		t.Fatalf("unexpected replacement %+v", r)
	}
	r, ok = tb.UniversalFor("__attribute__")
	if !ok || r.Has {
		t.Fatalf("__attribute__ has no replacement, got %+v", r)
	}
}
