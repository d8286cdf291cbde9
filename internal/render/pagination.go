package render

// Installation sheets are printed over a pre-drawn background: rows sit at
// fixed millimetre offsets and each page holds a fixed number of them.
const (
	installationRowsPerPage = 8
	installationFirstRowMM  = 62.0
	installationRowHeightMM = 24.5
)

type PlacedLine struct {
	Number int
	TopMM  float64
	Line   BillboardLine
}

type Page struct {
	Number int
	Total  int
	Lines  []PlacedLine
}

// Paginate lays lines out over pages of perPage rows. An empty input still
// yields one page so the sheet header prints.
func Paginate(lines []BillboardLine, perPage int, firstRowMM, rowHeightMM float64) []Page {
	if perPage < 1 {
		perPage = 1
	}
	total := (len(lines) + perPage - 1) / perPage
	if total == 0 {
		total = 1
	}

	pages := make([]Page, total)
	for i := range pages {
		pages[i] = Page{Number: i + 1, Total: total, Lines: []PlacedLine{}}
	}
	for i, line := range lines {
		page := i / perPage
		slot := i % perPage
		pages[page].Lines = append(pages[page].Lines, PlacedLine{
			Number: i + 1,
			TopMM:  firstRowMM + float64(slot)*rowHeightMM,
			Line:   line,
		})
	}
	return pages
}
