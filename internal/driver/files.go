package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExts are the extensions picked up when a directory is given.
var SourceExts = []string{".c", ".h"}

// ExpandPaths replaces directories with the C sources under them, sorted.
// Plain files are kept as given, in order, even when they do not exist:
// the run reports them as unreadable.
func ExpandPaths(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err != nil || !st.IsDir() {
			out = append(out, arg)
			continue
		}
		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			for _, want := range SourceExts {
				if ext == want {
					found = append(found, path)
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", arg, err)
		}
		// deterministic order
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}
