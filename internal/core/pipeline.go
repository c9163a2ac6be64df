package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/text/language"
)

// ErrProcessing replaces any unexpected failure after a file parsed successfully.
var ErrProcessing = errors.New("error processing file")

// ParseAndFilter runs ingestion, noise filtering and, for variants that have
// one, schema normalization.
func ParseAndFilter(ctx context.Context, def VariantDefinition, r io.Reader) (ParseResult, error) {
	ds, err := Ingest(ctx, r, def.Parse)
	if err != nil {
		return ParseResult{}, err
	}

	var res ParseResult
	err = guard(func() {
		res.Parsed = ds.Len()
		ds, res.Filtered = def.Filter.Apply(ds)
		if def.Normalize != nil {
			ds = def.Normalize(ds)
		}
		res.Dataset = ds
	})
	if err != nil {
		return ParseResult{}, err
	}
	return res, nil
}

// SpecFor returns the spec a variant actually sorts by: the user's spec for
// sortable variants, the fixed order otherwise.
func SpecFor(def VariantDefinition, requested SortSpec) SortSpec {
	if def.Info.UserSortable {
		return requested
	}
	return def.FixedSpec
}

// SortFor sorts ds the way def prescribes.
func SortFor(def VariantDefinition, ds Dataset, spec SortSpec, tag language.Tag) (Dataset, error) {
	var out Dataset
	err := guard(func() {
		out = Sort(ds, SpecFor(def, spec), NewComparator(def.Collation, tag))
	})
	return out, err
}

// guard runs fn and converts a panic into ErrProcessing.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("pipeline panic", "panic", fmt.Sprint(r))
			err = ErrProcessing
		}
	}()
	fn()
	return nil
}
