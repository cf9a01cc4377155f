// Package dataset loads the gym members dataset the dashboard visualizes.
//
// The CSV is decoded once into typed Member records with csvutil and mirrored
// into a gota DataFrame for tabular previews and summary statistics. A
// Dataset is immutable after Load returns; share it by pointer.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/jszwec/csvutil"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	kcalErrors "github.com/ezoic/caloriedash/pkg/errors"
	"github.com/ezoic/caloriedash/pkg/log"
)

// Dataset is the loaded, read-only dataset.
type Dataset struct {
	members []Member
	frame   dataframe.DataFrame
}

// Load reads the CSV at path. Every failure is marked ErrDataUnavailable.
func Load(path string) (*Dataset, error) {
	logger := log.GetLoggerWithName("dataset")

	f, err := os.Open(path)
	if err != nil {
		return nil, kcalErrors.DataUnavailable(err, "open dataset %q", path)
	}
	defer func() { _ = f.Close() }()

	d, err := LoadReader(f)
	if err != nil {
		return nil, kcalErrors.DataUnavailable(err, "load dataset %q", path)
	}

	logger.Info("Dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.PhaseKey, log.PhaseStartup,
		log.PathKey, path,
		log.SamplesKey, d.Len(),
	)
	return d, nil
}

// LoadReader decodes a CSV with a header row. All Member columns are
// required; extra columns are ignored.
func LoadReader(r io.Reader) (*Dataset, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if err == io.EOF {
		return nil, kcalErrors.DataUnavailable(kcalErrors.ErrEmptyData, "dataset has no header")
	}
	if err != nil {
		return nil, kcalErrors.DataUnavailable(err, "read header")
	}
	dec.DisallowMissingColumns = true

	var members []Member
	for {
		var m Member
		if err := dec.Decode(&m); err == io.EOF {
			break
		} else if err != nil {
			return nil, kcalErrors.DataUnavailable(err, "decode row %d", len(members)+1)
		}
		members = append(members, m)
	}

	return New(members)
}

// New builds a Dataset from already decoded members.
func New(members []Member) (*Dataset, error) {
	if len(members) == 0 {
		return nil, kcalErrors.DataUnavailable(kcalErrors.ErrEmptyData, "dataset has no rows")
	}

	members = append([]Member(nil), members...)
	frame := dataframe.LoadStructs(members)
	if frame.Err != nil {
		return nil, kcalErrors.DataUnavailable(frame.Err, "build dataframe")
	}
	return &Dataset{members: members, frame: frame}, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.members)
}

// Members returns a copy of the rows.
func (d *Dataset) Members() []Member {
	return append([]Member(nil), d.members...)
}

// Columns returns the column names in file order.
func (d *Dataset) Columns() []string {
	return d.frame.Names()
}

// Table is a rendered grid of strings.
type Table struct {
	Header []string
	Rows   [][]string
}

// Head returns the first n rows, fewer if the dataset is shorter.
func (d *Dataset) Head(n int) Table {
	if n > d.Len() {
		n = d.Len()
	}
	if n <= 0 {
		return Table{Header: d.frame.Names()}
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sub := d.frame.Subset(idx)

	t := Table{Header: sub.Names(), Rows: make([][]string, n)}
	for i := range t.Rows {
		t.Rows[i] = make([]string, len(t.Header))
	}
	for j, name := range t.Header {
		col := sub.Col(name)
		if col.Type() == series.Float {
			for i, v := range col.Float() {
				t.Rows[i][j] = strconv.FormatFloat(v, 'f', -1, 64)
			}
			continue
		}
		for i, v := range col.Records() {
			t.Rows[i][j] = v
		}
	}
	return t
}

// Describe returns count, mean, std, min, quartiles and max of every
// numeric column, one row per column.
func (d *Dataset) Describe() Table {
	t := Table{Header: []string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}}
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

	types := d.frame.Types()
	for j, name := range d.frame.Names() {
		if types[j] != series.Float && types[j] != series.Int {
			continue
		}
		col := d.frame.Col(name)
		t.Rows = append(t.Rows, []string{
			name,
			strconv.Itoa(col.Len()),
			format(col.Mean()),
			format(col.StdDev()),
			format(col.Min()),
			format(col.Quantile(0.25)),
			format(col.Median()),
			format(col.Quantile(0.75)),
			format(col.Max()),
		})
	}
	return t
}

// Floats returns a numeric column in row order.
func (d *Dataset) Floats(column string) ([]float64, error) {
	col := d.frame.Col(column)
	if col.Err != nil {
		return nil, kcalErrors.Wrapf(col.Err, "column %q", column)
	}
	if col.Type() != series.Float && col.Type() != series.Int {
		return nil, kcalErrors.NewValueError("Dataset.Floats",
			"column "+strconv.Quote(column)+" is not numeric")
	}
	return col.Float(), nil
}

// Group is the values of one column for rows sharing a category.
type Group struct {
	Name   string
	Values []float64
}

// GroupFloats splits a numeric column by the categories of column by.
// Groups are sorted by name.
func (d *Dataset) GroupFloats(column, by string) ([]Group, error) {
	if _, err := d.Floats(column); err != nil {
		return nil, err
	}
	byCol := d.frame.Col(by)
	if byCol.Err != nil {
		return nil, kcalErrors.Wrapf(byCol.Err, "column %q", by)
	}

	seen := make(map[string]bool)
	var names []string
	for _, v := range byCol.Records() {
		if !seen[v] {
			seen[v] = true
			names = append(names, v)
		}
	}
	sort.Strings(names)

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		sub := d.frame.Filter(dataframe.F{Colname: by, Comparator: series.Eq, Comparando: name})
		if sub.Err != nil {
			return nil, kcalErrors.Wrapf(sub.Err, "filter %s == %q", by, name)
		}
		groups = append(groups, Group{Name: name, Values: sub.Col(column).Float()})
	}
	return groups, nil
}

// Correlation returns the Pearson correlation matrix of columns. A constant
// column yields NaN entries.
func (d *Dataset) Correlation(columns []string) (*mat.SymDense, error) {
	if len(columns) == 0 {
		return nil, kcalErrors.NewModelError("Dataset.Correlation", "no columns", kcalErrors.ErrEmptyData)
	}

	X := mat.NewDense(d.Len(), len(columns), nil)
	for j, name := range columns {
		values, err := d.Floats(name)
		if err != nil {
			return nil, err
		}
		X.SetCol(j, values)
	}

	var corr mat.SymDense
	stat.CorrelationMatrix(&corr, X, nil)
	return &corr, nil
}
