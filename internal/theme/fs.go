// fs.go holds tiny helpers for walking a theme filesystem when template glob
// patterns such as “**/*.html” are not available in the Go standard library.
// The key export is CollectHTML, which returns every .html file under a
// directory of an fs.FS.
package theme

import (
	"io/fs"
	"strings"
)

// CollectHTML walks dir inside fsys recursively and returns a list of *.html
// paths, sorted lexically (fs.WalkDir order).  The result can be fed
// straight into template.ParseFS.
//
// Callers typically pass:
//
//	files, _ := CollectHTML(themes.FS, "base/templates/partials")
//	tpl.ParseFS(themes.FS, files...)
func CollectHTML(fsys fs.FS, dir string) ([]string, error) {
	var files []string

	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil { // propagate filesystem errors immediately
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
