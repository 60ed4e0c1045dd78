package rules

import (
	_ "embed"
	"fmt"
	"maps"
	"sort"

	"github.com/BurntSushi/toml"
)

//go:embed tables.toml
var defaultTables string

// Replacement is the suggested substitute for a keyword or function.
type Replacement struct {
	Text string `toml:"replacement"`
	Has  bool   `toml:"-"`
}

// TypeHint maps substrings of a line to a platform-type recommendation.
type TypeHint struct {
	Patterns  []string `toml:"patterns"`
	Message   string   `toml:"message"`
	Primitive bool     `toml:"primitive,omitempty"`
}

// Tables is the data every checker matches against.
type Tables struct {
	C99Keywords       []string               `toml:"c99_keywords"`
	C99Features       []string               `toml:"c99_features"`
	DesignatedInit    []string               `toml:"designated_init"`
	CompoundLiteral   []string               `toml:"compound_literal"`
	VariadicMacro     []string               `toml:"variadic_macro"`
	FlexibleArray     []string               `toml:"flexible_array"`
	C99Stdlib         []string               `toml:"c99_stdlib"`
	C89Headers        []string               `toml:"c89_headers"`
	C99Headers        []string               `toml:"c99_headers"`
	StdlibFunctions   []string               `toml:"stdlib_functions"`
	PlatformFunctions []string               `toml:"platform_functions"`
	NDKReserved       []string               `toml:"ndk_reserved"`
	SASCKeywords      []string               `toml:"sasc_keywords"`
	VBCCKeywords      []string               `toml:"vbcc_keywords"`
	Universal         map[string]Replacement `toml:"universal"`
	Unsafe            map[string]Replacement `toml:"unsafe"`
	TypeHints         []TypeHint             `toml:"type_hints"`
	Deprecated        map[string]string      `toml:"deprecated"`

	sets map[string]map[string]struct{}
}

// Default decodes the embedded tables.
func Default() *Tables {
	var t Tables
	if _, err := toml.Decode(defaultTables, &t); err != nil {
		panic(fmt.Errorf("embedded tables: %w", err))
	}
	t.finish()
	return &t
}

// LoadFile returns the defaults overridden by the tables in path.
// Lists named in the file replace the default list; maps merge by key.
func LoadFile(path string) (*Tables, error) {
	base := Default()
	var user Tables
	meta, err := toml.DecodeFile(path, &user)
	if err != nil {
		return nil, fmt.Errorf("failed to read tables %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown table %q in %s", undecoded[0].String(), path)
	}

	lists := []struct {
		key string
		dst *[]string
		src []string
	}{
		{"c99_keywords", &base.C99Keywords, user.C99Keywords},
		{"c99_features", &base.C99Features, user.C99Features},
		{"designated_init", &base.DesignatedInit, user.DesignatedInit},
		{"compound_literal", &base.CompoundLiteral, user.CompoundLiteral},
		{"variadic_macro", &base.VariadicMacro, user.VariadicMacro},
		{"flexible_array", &base.FlexibleArray, user.FlexibleArray},
		{"c99_stdlib", &base.C99Stdlib, user.C99Stdlib},
		{"c89_headers", &base.C89Headers, user.C89Headers},
		{"c99_headers", &base.C99Headers, user.C99Headers},
		{"stdlib_functions", &base.StdlibFunctions, user.StdlibFunctions},
		{"platform_functions", &base.PlatformFunctions, user.PlatformFunctions},
		{"ndk_reserved", &base.NDKReserved, user.NDKReserved},
		{"sasc_keywords", &base.SASCKeywords, user.SASCKeywords},
		{"vbcc_keywords", &base.VBCCKeywords, user.VBCCKeywords},
	}
	for _, l := range lists {
		if meta.IsDefined(l.key) {
			*l.dst = l.src
		}
	}
	if meta.IsDefined("type_hints") {
		base.TypeHints = user.TypeHints
	}
	maps.Copy(base.Universal, user.Universal)
	maps.Copy(base.Unsafe, user.Unsafe)
	maps.Copy(base.Deprecated, user.Deprecated)

	base.finish()
	return base, nil
}

func (t *Tables) finish() {
	for k, r := range t.Universal {
		r.Has = r.Text != ""
		t.Universal[k] = r
	}
	for k, r := range t.Unsafe {
		r.Has = r.Text != ""
		t.Unsafe[k] = r
	}
	t.sets = map[string]map[string]struct{}{
		"stdlib":   toSet(t.StdlibFunctions),
		"platform": toSet(t.PlatformFunctions),
		"ndk":      toSet(t.NDKReserved),
		"sasc":     toSet(t.SASCKeywords),
		"vbcc":     toSet(t.VBCCKeywords),
		"c99kw":    toSet(t.C99Keywords),
		"c99lib":   toSet(t.C99Stdlib),
	}
}

func (t *Tables) in(set, word string) bool {
	_, ok := t.sets[set][word]
	return ok
}

// UniversalFor returns the portable spelling of a compiler keyword.
func (t *Tables) UniversalFor(keyword string) (Replacement, bool) {
	r, ok := t.Universal[keyword]
	return r, ok
}

// Encode writes the tables as TOML, used by the tables command.
func (t *Tables) Encode(enc *toml.Encoder) error {
	return enc.Encode(t)
}

// DeprecatedNames returns deprecated typedef names in a stable order.
func (t *Tables) DeprecatedNames() []string {
	names := make([]string, 0, len(t.Deprecated))
	for k := range t.Deprecated {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func toSet(words []string) map[string]struct{} {
	out := make(map[string]struct{}, len(words))
	for _, w := range words {
		out[w] = struct{}{}
	}
	return out
}
