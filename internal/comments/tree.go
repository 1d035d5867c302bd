package comments

import (
	"sort"

	"github.com/ritanks-GrowthHacker/SA-Ticketing-sub001/internal/models"
)

// BuildTree turns a flat, already-authorized comment list into an ordered
// reply forest. Pure and deterministic: the same input always yields an
// identical tree, and rebuilding from a flattened tree reproduces it.
//
// A comment whose parent id is empty, or does not resolve within the input
// (its parent was deleted and excluded upstream), becomes a root. Cycles
// cannot occur because a parent must exist before any reply to it is
// created.
func BuildTree(flat []models.Comment) []*models.NestedComment {
	byID := make(map[string]*models.NestedComment, len(flat))
	for i := range flat {
		byID[flat[i].ID] = &models.NestedComment{
			Comment: flat[i],
			Replies: make([]*models.NestedComment, 0),
		}
	}

	roots := make([]*models.NestedComment, 0, len(flat))
	for i := range flat {
		node := byID[flat[i].ID]
		if parent, ok := byID[flat[i].ParentID]; ok && flat[i].ParentID != "" {
			parent.Replies = append(parent.Replies, node)
			continue
		}
		roots = append(roots, node)
	}

	sortLevel(roots, 0)
	return roots
}

// sortLevel orders one sibling level by creation time (id as tiebreaker for
// determinism) and assigns depths top-down.
func sortLevel(nodes []*models.NestedComment, depth int) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].CreatedAt.Equal(nodes[j].CreatedAt) {
			return nodes[i].ID < nodes[j].ID
		}
		return nodes[i].CreatedAt.Before(nodes[j].CreatedAt)
	})
	for _, n := range nodes {
		n.Depth = depth
		sortLevel(n.Replies, depth+1)
	}
}

// Flatten walks the forest depth-first and returns the underlying comments.
func Flatten(roots []*models.NestedComment) []models.Comment {
	var out []models.Comment
	var walk func(nodes []*models.NestedComment)
	walk = func(nodes []*models.NestedComment) {
		for _, n := range nodes {
			out = append(out, n.Comment)
			walk(n.Replies)
		}
	}
	walk(roots)
	return out
}

// CountNodes returns the total number of comments in the forest.
func CountNodes(roots []*models.NestedComment) int {
	total := 0
	var walk func(nodes []*models.NestedComment)
	walk = func(nodes []*models.NestedComment) {
		for _, n := range nodes {
			total++
			walk(n.Replies)
		}
	}
	walk(roots)
	return total
}
