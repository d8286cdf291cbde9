package customers

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"

	"github.com/nurpe/billboards/internal/model"
)

type Group struct {
	Primary    model.Customer
	Duplicates []model.Customer
}

var arabicFolds = strings.NewReplacer(
	"أ", "ا",
	"إ", "ا",
	"آ", "ا",
	"ة", "ه",
	"ى", "ي",
)

// NormalizeName folds case, punctuation, whitespace runs and Arabic letter
// variants so near-identical spellings compare equal.
func NormalizeName(name string) string {
	name = arabicFolds.Replace(strings.ToLower(name))
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	return strings.Join(fields, " ")
}

// Similarity is 1 - distance / longest length, over normalized names.
func Similarity(a, b string) float64 {
	a, b = NormalizeName(a), NormalizeName(b)
	if a == "" && b == "" {
		return 1
	}
	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// Groups clusters customers whose names are at least threshold similar or
// whose phone numbers match. The first customer of each cluster, in input
// order, is proposed as the primary record. Singletons are not returned.
func Groups(list []model.Customer, threshold float64) []Group {
	parent := make([]int, len(list))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		if ra < rb {
			parent[rb] = ra
		} else {
			parent[ra] = rb
		}
	}

	for i := 0; i < len(list); i++ {
		for j := i + 1; j < len(list); j++ {
			samePhone := list[i].Phone != "" && list[i].Phone == list[j].Phone
			if samePhone || Similarity(list[i].Name, list[j].Name) >= threshold {
				union(i, j)
			}
		}
	}

	members := make(map[int][]int)
	order := make([]int, 0)
	for i := range list {
		root := find(i)
		if _, seen := members[root]; !seen {
			order = append(order, root)
		}
		members[root] = append(members[root], i)
	}

	groups := make([]Group, 0)
	for _, root := range order {
		idx := members[root]
		if len(idx) < 2 {
			continue
		}
		group := Group{Primary: list[idx[0]], Duplicates: make([]model.Customer, 0, len(idx)-1)}
		for _, i := range idx[1:] {
			group.Duplicates = append(group.Duplicates, list[i])
		}
		groups = append(groups, group)
	}
	return groups
}
