package comments

import "regexp"

// Mentions embed the display name and user id together so extraction never
// needs a directory lookup: @[Jane Doe](user-id).
var mentionRE = regexp.MustCompile(`@\[[^\]\n]+\]\(([^)\s]+)\)`)

// ExtractMentions returns the user ids referenced in the content, deduped,
// in first-occurrence order. Empty input yields an empty result.
func ExtractMentions(content string) []string {
	matches := mentionRE.FindAllStringSubmatch(content, -1)
	out := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		id := m[1]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
