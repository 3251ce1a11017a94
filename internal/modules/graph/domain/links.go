package domain

import (
	"regexp"
	"strings"

	"weft/internal/platform/slug"
)

// bracketLink matches inline links of the form [label](target). Malformed
// syntax without a closing paren simply does not match.
var bracketLink = regexp.MustCompile(`\[[^\]]*\]\(([^)]+)\)`)

// ExtractLinks scans body text for internal cross-references. External URLs,
// in-page anchors and mailto links are skipped; the rest are normalized to
// slugs and kept only when they name a known page other than self. The result
// preserves first-occurrence order with duplicates collapsed.
func ExtractLinks(body, self string, known map[string]struct{}) []string {
	matches := bracketLink.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}
	var out []string
	added := map[string]struct{}{}
	for _, match := range matches {
		target := strings.TrimSpace(match[1])
		if target == "" || strings.HasPrefix(target, "#") {
			continue
		}
		if strings.Contains(target, "://") || strings.HasPrefix(target, "mailto:") {
			continue
		}
		candidate := slug.FromPath(target)
		if candidate == self {
			continue
		}
		if _, ok := known[candidate]; !ok {
			continue
		}
		if _, ok := added[candidate]; ok {
			continue
		}
		added[candidate] = struct{}{}
		out = append(out, candidate)
	}
	return out
}
