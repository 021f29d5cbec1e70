package ingestion

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF reads each page line by line. Short upper-case lines become
// headings and every page ends with a blank line.
func extractPDF(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var lines []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		rows := pageLines(page)
		if len(rows) == 0 {
			continue
		}

		for _, line := range rows {
			if isHeading(line) {
				line = "## " + line
			}
			lines = append(lines, line)
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n"), nil
}

// rowTolerance is how far apart, in points, two glyph baselines may be and
// still belong to the same line.
const rowTolerance = 2.0

// pageLines rebuilds the text lines of a page from its positioned glyphs:
// rows top to bottom, glyphs left to right within a row.
func pageLines(page pdf.Page) []string {
	glyphs := page.Content().Text
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].Y > glyphs[j].Y })

	var out []string
	for start := 0; start < len(glyphs); {
		end := start + 1
		for end < len(glyphs) && math.Abs(glyphs[start].Y-glyphs[end].Y) <= rowTolerance {
			end++
		}
		row := glyphs[start:end]
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })

		var sb strings.Builder
		for _, g := range row {
			sb.WriteString(g.S)
		}
		if line := strings.TrimSpace(sb.String()); line != "" {
			out = append(out, line)
		}
		start = end
	}
	return out
}
