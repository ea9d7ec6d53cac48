package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// ErrFileNotFound indicates the input path does not reference an existing file.
	ErrFileNotFound = errors.New("file does not exist")
	// ErrFileUnreadable indicates the input exists but could not be opened or read.
	ErrFileUnreadable = errors.New("file is unreadable")
)

// SkipReason classifies a rejected line.
type SkipReason string

const (
	SkipTooFewFields SkipReason = "too_few_fields"
	SkipNonNumeric   SkipReason = "non_numeric"
	SkipUnreadable   SkipReason = "unreadable"
)

// Record is one validated listing. Field order is kilometers, year, engine, price
// regardless of where the columns sit in the file.
type Record struct {
	Kilometers float64 `json:"kilometers" yaml:"kilometers"`
	Year       float64 `json:"year" yaml:"year"`
	Engine     float64 `json:"engine" yaml:"engine"`
	Price      float64 `json:"price" yaml:"price"`
}

// Values returns the record as a 4-tuple in record order.
func (r Record) Values() [4]float64 {
	return [4]float64{r.Kilometers, r.Year, r.Engine, r.Price}
}

// Dataset is the result of one parsing pass.
type Dataset struct {
	Source  string
	Records []Record
	// Lines counts every line seen, header included.
	Lines       int
	Skipped     int
	SkipReasons map[SkipReason]int
}

func newDataset(source string) *Dataset {
	return &Dataset{Source: source, SkipReasons: map[SkipReason]int{}}
}

func (d *Dataset) skip(reason SkipReason) {
	d.Skipped++
	d.SkipReasons[reason]++
}

// Len returns the number of validated records.
func (d *Dataset) Len() int { return len(d.Records) }

// Column returns a copy of the named column's values in input order.
func (d *Dataset) Column(name string) ([]float64, bool) {
	var pick func(Record) float64
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ColKilometers, "km":
		pick = func(r Record) float64 { return r.Kilometers }
	case ColYear:
		pick = func(r Record) float64 { return r.Year }
	case ColEngine:
		pick = func(r Record) float64 { return r.Engine }
	case ColPrice:
		pick = func(r Record) float64 { return r.Price }
	default:
		return nil, false
	}
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = pick(r)
	}
	return out, true
}

// Columns returns copies of all numeric columns, ordered as ColumnNames.
func (d *Dataset) Columns() [][]float64 {
	cols := make([][]float64, len(ColumnNames))
	for i, name := range ColumnNames {
		cols[i], _ = d.Column(name)
	}
	return cols
}

// IsNumeric reports whether s parses as a 64-bit float.
func IsNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// ParseFile reads listings from path. File-level failures return an empty,
// non-nil Dataset together with an error wrapping ErrFileNotFound or
// ErrFileUnreadable so callers can report and carry on.
func ParseFile(path string, s Schema) (*Dataset, error) {
	ds := newDataset(filepath.Base(path))
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ds, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return ds, fmt.Errorf("%w: %w", ErrFileUnreadable, err)
	}
	if info.IsDir() {
		return ds, fmt.Errorf("%w: %s is a directory", ErrFileUnreadable, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return ds, fmt.Errorf("%w: %w", ErrFileUnreadable, err)
	}
	defer f.Close()

	parsed := Parse(f, s)
	parsed.Source = ds.Source
	return parsed, nil
}

// Parse runs the line pipeline over r. The first line is the header and is
// never counted as a skip.
func Parse(r io.Reader, s Schema) *Dataset {
	ds := newDataset("")
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				if line != "" {
					parseLine(ds, line, s)
				}
				break
			}
			// Partial data after a read error cannot be trusted; count the line once.
			if ds.Lines > 0 {
				ds.Lines++
				ds.skip(SkipUnreadable)
			}
			break
		}
		parseLine(ds, line, s)
	}
	return ds
}

func parseLine(ds *Dataset, line string, s Schema) {
	ds.Lines++
	if ds.Lines == 1 {
		return
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if !utf8.ValidString(line) {
		ds.skip(SkipUnreadable)
		return
	}
	rec, reason, ok := parseFields(strings.Split(line, s.Delimiter), s)
	if !ok {
		ds.skip(reason)
		return
	}
	ds.Records = append(ds.Records, rec)
}

// parseFields accepts a row only when all four target fields are numeric.
func parseFields(fields []string, s Schema) (Record, SkipReason, bool) {
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) < s.MinFields {
		return Record{}, SkipTooFewFields, false
	}
	var vals [4]float64
	for i, idx := range []int{s.Kilometers, s.Year, s.Engine, s.Price} {
		if idx >= len(fields) {
			return Record{}, SkipTooFewFields, false
		}
		v, err := strconv.ParseFloat(fields[idx], 64)
		if err != nil {
			return Record{}, SkipNonNumeric, false
		}
		vals[i] = v
	}
	return Record{Kilometers: vals[0], Year: vals[1], Engine: vals[2], Price: vals[3]}, "", true
}
