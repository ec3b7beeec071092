package lint

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/drewcray/skillpack/internal/markdown"
	"github.com/drewcray/skillpack/internal/util"
)

// checkLinks verifies that every relative link or image destination in a
// markdown document resolves to a file inside the bundle. External URLs,
// fragments, and mailto links are ignored; the bundle's documents
// reference each other only by relative filename.
func checkLinks(report *Report, dir, rel string, content []byte) {
	doc, err := markdown.Parse(content)
	if err != nil {
		report.errorf(CheckFiles, rel, 0, "unparsable markdown: %v", err)
		return
	}

	for _, link := range doc.Links() {
		target, ok := relativeTarget(link.Dest)
		if !ok {
			continue
		}

		// Resolve against the linking document's directory.
		resolved := path.Join(path.Dir(rel), target)
		if strings.HasPrefix(resolved, "..") {
			report.errorf(CheckFiles, rel, link.Line, "link %q escapes the bundle", link.Dest)
			continue
		}

		full := filepath.Join(dir, filepath.FromSlash(resolved))
		if !util.FileExists(full) && !util.DirExists(full) {
			report.errorf(CheckFiles, rel, link.Line, "link target %q does not exist", link.Dest)
		}
	}
}

// relativeTarget returns the file path of a link destination when the
// destination is a relative path within the bundle, and false otherwise.
func relativeTarget(dest string) (string, bool) {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "/") {
		return "", false
	}

	u, err := url.Parse(dest)
	if err != nil {
		// Not parsable as a URL; treat the raw string as a path.
		return dest, true
	}
	if u.Scheme != "" || u.Host != "" {
		return "", false
	}
	if u.Path == "" {
		return "", false
	}

	// url.Parse already percent-decoded the path; decoding again would
	// turn a literal %25 in a filename into a miss.
	return u.Path, true
}
