package core

import "slices"

// Record is one row keyed by column name.
type Record map[string]Value

// Get returns the cell for column, or a missing value when the record has none.
func (r Record) Get(column string) Value {
	if v, ok := r[column]; ok {
		return v
	}
	return MissingValue()
}

// Clone returns a shallow copy of the record. Values are immutable.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Dataset is an ordered sequence of records sharing one column list.
type Dataset struct {
	Columns []string
	Records []Record
}

// NewDataset builds a dataset and pads every record with missing values for
// columns it lacks, so all records carry the same keys.
func NewDataset(columns []string, records []Record) Dataset {
	for _, rec := range records {
		for _, col := range columns {
			if _, ok := rec[col]; !ok {
				rec[col] = MissingValue()
			}
		}
	}
	return Dataset{Columns: columns, Records: records}
}

// Len returns the number of records.
func (d Dataset) Len() int { return len(d.Records) }

// IsEmpty reports whether the dataset has no records.
func (d Dataset) IsEmpty() bool { return len(d.Records) == 0 }

// Clone copies the column list and record slice. Records themselves are
// shared, which is safe because pipeline stages never mutate a record in place.
func (d Dataset) Clone() Dataset {
	return Dataset{
		Columns: slices.Clone(d.Columns),
		Records: slices.Clone(d.Records),
	}
}

// HasColumn reports whether column is part of the schema.
func (d Dataset) HasColumn(column string) bool {
	return slices.Contains(d.Columns, column)
}

// Rows renders every record as export text in column order.
func (d Dataset) Rows() [][]string {
	rows := make([][]string, len(d.Records))
	for i, rec := range d.Records {
		row := make([]string, len(d.Columns))
		for j, col := range d.Columns {
			row[j] = rec.Get(col).Text()
		}
		rows[i] = row
	}
	return rows
}

// Direction is the order applied by a sort key.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortKey names a column and the direction it is compared in.
type SortKey struct {
	Column string
	Dir    Direction
}

// VariantInfo describes a pipeline variant for display.
type VariantInfo struct {
	Key         string // Unique identifier: "cards"
	Label       string // Display name: "Trading cards"
	Description string
	ExportName  string // Download file name: "sorted_cards.csv"

	// UserSortable variants let the user choose sort keys; others always use
	// their fixed order.
	UserSortable bool
}

// ParseOptions controls how a variant reads its input.
type ParseOptions struct {
	// Trim removes surrounding whitespace from header names and values.
	Trim bool

	// InferTypes turns numeric and boolean literals into typed values.
	InferTypes bool

	// KeepBlankLines turns each empty line between records into a blank
	// record instead of dropping it.
	KeepBlankLines bool
}

// NormalizeFunc maps a filtered dataset onto a variant's target schema.
type NormalizeFunc func(Dataset) Dataset

// Collation selects how strings are compared while sorting.
type Collation int

const (
	// CollateLocale uses locale-aware collation.
	CollateLocale Collation = iota
	// CollatePlain compares strings byte-wise.
	CollatePlain
)

// VariantDefinition contains everything needed to run one pipeline variant.
type VariantDefinition struct {
	Info      VariantInfo
	Parse     ParseOptions
	Filter    NoiseFilter
	Normalize NormalizeFunc // nil when the variant keeps the uploaded schema
	FixedSpec SortSpec      // used when Info.UserSortable is false
	Collation Collation
}

// ParseResult is the outcome of ingestion plus filtering and normalization.
type ParseResult struct {
	Dataset  Dataset
	Parsed   int // data rows read from the file
	Filtered int // rows dropped as noise
}
