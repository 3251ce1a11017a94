package slug

import (
	"regexp"
	"strings"
)

// Index is the reserved slug for the page served at the root path.
const Index = "index"

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}

// FromPath maps a URL path to its slug. Relative paths are anchored first,
// a single trailing slash is dropped, and the root path maps to Index.
func FromPath(path string) string {
	path = strings.TrimPrefix(path, "./")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	if path == "/" {
		return Index
	}
	return strings.TrimPrefix(path, "/")
}

// Path is the inverse of FromPath: the Index slug maps back to the root.
func Path(s string) string {
	if s == Index {
		return "/"
	}
	return "/" + s
}
