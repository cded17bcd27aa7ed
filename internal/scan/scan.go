// Package scan lists the input files of a batch run and derives their
// output paths. Listing is an explicit os.ReadDir with an extension
// predicate rather than a glob, so a directory with zero matches and a
// missing directory both yield an empty set instead of a literal pattern.
package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// List returns the regular files directly inside dir whose name ends with
// ext (case-insensitive). The result is sorted lexically so runs are
// deterministic regardless of directory order. A missing or unreadable
// directory returns an empty list and no error; callers report that
// condition themselves.
func List(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext)) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}

	sort.Strings(files)
	return files, nil
}

// OutputPath derives the output path for an input file by replacing its
// extension with outExt. The directory component is preserved unchanged.
// outExt must include the leading dot.
func OutputPath(in, outExt string) string {
	base := strings.TrimSuffix(in, filepath.Ext(in))
	return base + outExt
}
