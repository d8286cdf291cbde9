package normalize

import (
	"sort"
	"strconv"
	"strings"
)

var sizeSeparators = strings.NewReplacer(
	"×", "x",
	"*", "x",
	"-", "x",
	"/", "x",
	"X", "x",
	" ", "",
)

// Size canonicalizes a billboard size: separators become "x" and the
// dimensions are sorted ascending, so "12x4" and "4 X 12" both read "4x12".
func Size(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" {
		return ""
	}
	value = sizeSeparators.Replace(strings.ToLower(value))
	value = strings.TrimSuffix(value, "m")

	parts := strings.Split(value, "x")
	dims := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSuffix(part, "m")
		if part == "" {
			continue
		}
		dim, err := strconv.ParseFloat(strings.ReplaceAll(part, ",", "."), 64)
		if err != nil || dim <= 0 {
			return value
		}
		dims = append(dims, dim)
	}
	if len(dims) < 2 {
		return value
	}

	sort.Float64s(dims)
	formatted := make([]string, len(dims))
	for i, dim := range dims {
		formatted[i] = strconv.FormatFloat(dim, 'f', -1, 64)
	}
	return strings.Join(formatted, "x")
}
