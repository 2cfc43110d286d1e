package review

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// utf8BOM is written at the start of output files so spreadsheet tools
// detect the encoding of non-ASCII review text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrNoReviewColumn is returned by ReadTexts when the input CSV has no
// "review" column in its header row.
var ErrNoReviewColumn = errors.New("review: no review column in CSV")

// WriteCSV persists records to path as UTF-8 CSV with a BOM signature
// and a review,rating,date header. Rating is empty when absent; date is
// formatted YYYY-MM-DD.
func WriteCSV(path string, records []Review) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("review: create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return fmt.Errorf("review: write BOM: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"review", "rating", "date"}); err != nil {
		return fmt.Errorf("review: write header: %w", err)
	}
	for _, r := range records {
		rating := ""
		if r.Rating != nil {
			rating = strconv.Itoa(*r.Rating)
		}
		row := []string{r.Text, rating, r.Date.Format("2006-01-02")}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("review: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("review: flush: %w", err)
	}
	return f.Close()
}

// ReadTexts reads the review column from a CSV file. The column is
// located by header name; any other columns are ignored. Rows shorter
// than the header are tolerated, their missing cells read as "".
func ReadTexts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("review: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("review: parse %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, ErrNoReviewColumn
	}

	col := -1
	for i, name := range rows[0] {
		// The first header cell may carry the BOM of our own output.
		if strings.TrimPrefix(name, "\ufeff") == "review" {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, ErrNoReviewColumn
	}

	texts := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if col < len(row) {
			texts = append(texts, row[col])
		} else {
			texts = append(texts, "")
		}
	}
	return texts, nil
}
