package bref

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// ErrSchemaNotFound marks a page with no usable header row.
	ErrSchemaNotFound = errors.New("no header row found")
	// ErrBodyNotFound marks a page whose table has no body section.
	ErrBodyNotFound = errors.New("no table body found")
)

// Table is the raw extraction result: the header schema plus the body rows
// zipped positionally against it. Cell text is kept verbatim; trimming and
// typing happen during normalization.
type Table struct {
	Headers []string
	Rows    [][]string

	// Ragged-row accounting. Padded counts rows shorter than the header
	// that were filled out with empty cells; Truncated counts rows longer
	// than the header whose extra cells were dropped. Repeated-header
	// artifact rows usually show up in Padded since they carry a single
	// row-header cell.
	Padded    int
	Truncated int
}

// ParseTable extracts the first statistics table from page HTML.
//
// The header schema comes from the first <tr> in document order, reading
// its <th> cells. Body rows come from the table's <tbody>: each row starts
// with its <th> row-header cell (empty string when absent) followed by the
// <td> cells in document order. Every returned row has exactly
// len(Headers) fields.
func ParseTable(html string) (*Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	headerRow := doc.Find("tr").First()
	if headerRow.Length() == 0 {
		return nil, ErrSchemaNotFound
	}
	var headers []string
	headerRow.Find("th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})
	if len(headers) == 0 {
		return nil, ErrSchemaNotFound
	}

	tbody := doc.Find("tbody").First()
	if tbody.Length() == 0 {
		return nil, ErrBodyNotFound
	}

	t := &Table{Headers: headers}
	tbody.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		row := make([]string, 0, len(headers))
		if th := tr.Find("th").First(); th.Length() > 0 {
			row = append(row, th.Text())
		} else {
			row = append(row, "")
		}
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			row = append(row, td.Text())
		})

		switch {
		case len(row) < len(t.Headers):
			for len(row) < len(t.Headers) {
				row = append(row, "")
			}
			t.Padded++
		case len(row) > len(t.Headers):
			row = row[:len(t.Headers)]
			t.Truncated++
		}
		t.Rows = append(t.Rows, row)
	})

	return t, nil
}
