// Package feed reads delimited product-catalog feeds into loosely-typed
// records.
//
// Feeds arrive as UTF-8 text with a header row, but the delimiter and the
// exact column names vary per advertiser. The reader sniffs the delimiter
// from a preview of the input, keys every row by its header column names,
// and infers scalar types for unambiguous cells. Malformed individual rows
// become warnings rather than aborting the read; only a structurally
// unreadable source fails.
package feed

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// MaxFeedSize is the maximum allowed feed file size (100MB).
var MaxFeedSize int64 = 100 * 1024 * 1024

// delimiterCandidates are tried in order when sniffing; comma wins ties.
var delimiterCandidates = []rune{',', '\t', '|', ';'}

// previewLines is how many non-empty lines the delimiter sniffer inspects.
const previewLines = 10

// Warning records a non-fatal parse anomaly.
type Warning struct {
	Line    int
	Message string
}

// ReadFile reads a local feed file into ordered records.
func ReadFile(path string) ([]Record, []Warning, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("stat feed %s: %w", path, err)
	}
	if info.Size() > MaxFeedSize {
		return nil, nil, fmt.Errorf("feed %s exceeds %dMB limit", path, MaxFeedSize/(1024*1024))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open feed %s: %w", path, err)
	}
	defer f.Close()

	return Read(f)
}

// Read decodes a delimited feed into ordered records.
//
// The first non-empty line is the header; fully empty lines are skipped.
// Record order matches source line order, which callers use as the row index
// in error reports. Returned warnings cover malformed rows that were skipped;
// an error means the source could not be read at all.
func Read(r io.Reader) ([]Record, []Warning, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFeedSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("read feed: %w", err)
	}
	if int64(len(data)) > MaxFeedSize {
		return nil, nil, fmt.Errorf("feed exceeds %dMB limit", MaxFeedSize/(1024*1024))
	}

	data = stripBOM(sanitizeUTF8(data))
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, errors.New("feed is empty")
	}

	delim := detectDelimiter(data)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	// Header: encoding/csv already skips blank lines, so the first record
	// read is the first non-empty line.
	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read feed header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var (
		records  []Record
		warnings []Warning
	)

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				warnings = append(warnings, Warning{
					Line:    parseErr.Line,
					Message: parseErr.Err.Error(),
				})
				continue
			}
			return nil, nil, fmt.Errorf("read feed row: %w", err)
		}

		if isEmptyRow(row) {
			continue
		}

		line, _ := cr.FieldPos(0)

		if len(row) != len(header) {
			warnings = append(warnings, Warning{
				Line:    line,
				Message: fmt.Sprintf("expected %d fields, got %d", len(header), len(row)),
			})
		}

		rec := make(Record, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(row) {
				rec[name] = inferValue(row[i])
			}
		}
		records = append(records, rec)
	}

	return records, warnings, nil
}

// detectDelimiter picks the candidate that splits a preview of the input
// into the most fields with a consistent count per line.
func detectDelimiter(data []byte) rune {
	preview := previewRows(data)
	if len(preview) == 0 {
		return ','
	}

	best := ','
	bestScore := 0

	for _, cand := range delimiterCandidates {
		cr := csv.NewReader(strings.NewReader(strings.Join(preview, "\n")))
		cr.Comma = cand
		cr.FieldsPerRecord = -1
		cr.LazyQuotes = true

		rows, err := cr.ReadAll()
		if err != nil || len(rows) == 0 {
			continue
		}

		fields := len(rows[0])
		consistent := true
		for _, row := range rows[1:] {
			if len(row) != fields {
				consistent = false
				break
			}
		}

		if consistent && fields > 1 && fields > bestScore {
			best = cand
			bestScore = fields
		}
	}

	return best
}

// previewRows returns up to previewLines non-empty lines from the input.
func previewRows(data []byte) []string {
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
		if len(out) == previewLines {
			break
		}
	}
	return out
}

// isEmptyRow reports whether every cell is blank.
func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// stripBOM removes a leading UTF-8 byte order mark.
func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
}

// sanitizeUTF8 replaces invalid UTF-8 sequences with the replacement
// character so encoding/csv never sees broken runes.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}
