package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB cap for the seed corpus
)

var builtinSeeds = []string{
	"",
	"x = 42;\n",
	"/* open\n still open\n",
	"int a; // trailing\n",
	"char *s = \"/* not a comment */\";\n",
	"char c = '\\'';\n",
	"void f(void)\n{\n    x = 1;\n    int y;\n}\n",
	"Forbid();\nPermit();\nPermit();\n",
	"__asm(\"nop\"); __saveds int f(void);\n",
	"strcpy(dst, src); gets(buf);\n",
	"{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{{}}}}\n",
	"/* $CODEX: marker */ x = 3;\r\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every C fixture found under internal/*/testdata.
func addTestdataSeeds(f *testing.F) {
	root := ".."
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext != ".c" && ext != ".h" {
			return nil
		}
		if filepath.Base(filepath.Dir(path)) != "testdata" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
