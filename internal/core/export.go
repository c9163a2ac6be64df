package core

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ErrNothingToExport is returned when there are no records to download.
var ErrNothingToExport = errors.New("nothing to export")

// ExportContentType is the MIME type of exported files.
const ExportContentType = "text/csv"

// WriteCSV writes ds as CSV: the header in column order, then one row per record.
func WriteCSV(w io.Writer, ds Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range ds.Rows() {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Serialize renders ds as CSV bytes. An empty dataset is not exported.
func Serialize(ds Dataset) ([]byte, error) {
	if ds.IsEmpty() {
		return nil, ErrNothingToExport
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
