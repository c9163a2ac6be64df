package core

// ingest.go reads an uploaded CSV into a Dataset.
//
// Input passes through a UTF-8 decoder first: a leading byte order mark
// (added by Excel on Windows) is dropped and invalid byte sequences become
// U+FFFD, so a badly encoded export still parses. The first record is the
// header; everything after it is data.

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrEmptyFile is returned when the input has no header row at all.
var ErrEmptyFile = errors.New("empty file")

// ContextCheckInterval is how often (in rows) ingestion checks for cancellation.
var ContextCheckInterval = 100

// ParseError reports malformed CSV. Its message is the parser's message verbatim.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// NewInputReader wraps r with BOM stripping and UTF-8 repair.
func NewInputReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
}

// Ingest parses CSV from r. Rows shorter than the header get missing values
// for the absent columns; cells beyond the header are ignored. A header-only
// input yields an empty dataset.
//
// A bare quote inside an unquoted cell (12" figure) is read literally. An
// unterminated quoted field is still a ParseError.
func Ingest(ctx context.Context, r io.Reader, opts ParseOptions) (Dataset, error) {
	data, err := io.ReadAll(NewInputReader(r))
	if err != nil {
		return Dataset{}, fmt.Errorf("read input: %w", err)
	}

	ds, err := parseCSV(ctx, data, opts, false)
	if errors.Is(err, csv.ErrBareQuote) {
		ds, err = parseCSV(ctx, data, opts, true)
	}
	return ds, err
}

func parseCSV(ctx context.Context, data []byte, opts ParseOptions, lazyQuotes bool) (Dataset, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = lazyQuotes

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Dataset{}, ErrEmptyFile
	}
	if err != nil {
		return Dataset{}, &ParseError{Err: err}
	}

	columns, positions := indexHeader(header, opts.Trim)
	convert := func(raw string) Value {
		if opts.InferTypes {
			return InferValue(raw)
		}
		return TextValue(raw, opts.Trim)
	}

	var records []Record
	lastLine := endLine(cr, header)
	for line := 0; ; line++ {
		if line%ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Dataset{}, fmt.Errorf("read cancelled after %d rows: %w", line, err)
			}
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Dataset{}, &ParseError{Err: err}
		}

		// encoding/csv skips empty lines; put them back as blank records.
		if opts.KeepBlankLines {
			start, _ := cr.FieldPos(0)
			for ; lastLine+1 < start; lastLine++ {
				records = append(records, blankRecord(columns, convert))
			}
		}
		lastLine = endLine(cr, row)

		rec := make(Record, len(columns))
		for _, col := range columns {
			pos := positions[col]
			if pos < len(row) {
				rec[col] = convert(row[pos])
			} else {
				rec[col] = MissingValue()
			}
		}
		records = append(records, rec)
	}

	return Dataset{Columns: columns, Records: records}, nil
}

// endLine returns the line on which the record just read ends. Quoted
// fields may span lines; their newlines are kept in the field text.
func endLine(cr *csv.Reader, row []string) int {
	last := len(row) - 1
	line, _ := cr.FieldPos(last)
	return line + strings.Count(row[last], "\n")
}

// blankRecord is an empty line read against the header: one empty cell in
// the first column and nothing else.
func blankRecord(columns []string, convert func(string) Value) Record {
	rec := make(Record, len(columns))
	for i, col := range columns {
		if i == 0 {
			rec[col] = convert("")
		} else {
			rec[col] = MissingValue()
		}
	}
	return rec
}

// indexHeader returns the distinct column names in header order and, for
// each, the position its value is read from. When a name repeats, the column
// keeps its first place but the last occurrence supplies the value.
func indexHeader(header []string, trim bool) ([]string, map[string]int) {
	columns := make([]string, 0, len(header))
	positions := make(map[string]int, len(header))
	for i, h := range header {
		name := h
		if trim {
			name = CleanHeader(h)
		}
		if _, seen := positions[name]; !seen {
			columns = append(columns, name)
		}
		positions[name] = i
	}
	return columns, positions
}
