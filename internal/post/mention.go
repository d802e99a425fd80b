package post

import (
	"regexp"
	"strconv"
)

// Rich-text descriptions reference users via anchors carrying a
// data-user-id attribute.
var mentionRe = regexp.MustCompile(`data-user-id="(\d+)"`)

// Mentions returns the user ids referenced in a description, deduplicated,
// in order of first appearance.
func Mentions(description string) []uint64 {
	matches := mentionRe.FindAllStringSubmatch(description, -1)
	if len(matches) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(matches))
	for _, m := range matches {
		id, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, id)
	}
	return dedup(ids)
}
