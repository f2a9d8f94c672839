package builders

import (
	"github.com/Ramsey-B/fern/pkg/categories"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/transforms"
)

// Person pages have carried credits in two shapes. Both group into the same
// category key to title brief mapping.

// GroupFlatCredits groups legacy [category, id, title, kind, image, year]
// tuples. Categories in this shape are already plain keys such as "writer".
func GroupFlatCredits(raw any, skip SkipFunc) map[string][]models.TitleBrief {
	out := map[string][]models.TitleBrief{}
	for i, item := range transforms.AsList(raw) {
		category, brief, err := FlatCredit(item)
		if err != nil {
			if skip != nil {
				skip(i, err)
			}
			continue
		}
		key := categories.Resolve(category, "")
		out[key] = append(out[key], brief)
	}
	return out
}

// GroupEdgeCredits groups GraphQL credit groupings:
//
//	{grouping: {groupingId, text}, credits: {edges: [{node: {title: {...}}}]}}
//
// Groupings whose id and label are both missing are skipped whole.
func GroupEdgeCredits(raw any, skip SkipFunc) map[string][]models.TitleBrief {
	out := map[string][]models.TitleBrief{}
	for _, group := range transforms.AsList(raw) {
		key := categories.Resolve(
			transforms.String(transforms.Dig(group, "grouping", "groupingId")),
			transforms.String(transforms.Dig(group, "grouping", "text")),
		)
		if key == "" {
			continue
		}

		edges := transforms.AsList(transforms.Dig(group, "credits", "edges"))
		titles := make([]any, 0, len(edges))
		for _, edge := range edges {
			titles = append(titles, transforms.Dig(edge, "node", "title"))
		}

		if _, ok := out[key]; !ok {
			out[key] = []models.TitleBrief{}
		}
		out[key] = append(out[key], Collect(titles, TitleNode, skip)...)
	}
	return out
}

// GroupFilmography groups filmography credit nodes, each carrying its own
// category.id and title.
func GroupFilmography(raw any, skip SkipFunc) map[string][]models.TitleBrief {
	out := map[string][]models.TitleBrief{}
	for i, node := range transforms.AsList(raw) {
		key := categories.Resolve(
			transforms.String(transforms.Dig(node, "category", "id")),
			transforms.String(transforms.Dig(node, "category", "text")),
		)
		if key == "" {
			continue
		}

		brief, err := TitleNode(transforms.Dig(node, "title"))
		if err != nil {
			if skip != nil {
				skip(i, err)
			}
			continue
		}
		out[key] = append(out[key], brief)
	}
	return out
}

// Jobs maps profession category tokens to category keys.
func Jobs(raw any) []string {
	tokens := transforms.Strings(raw)
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		out = append(out, categories.Resolve(token, ""))
	}
	return out
}
