package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrSheetNotFound     = errors.New("sheet not found")
	ErrNoHeader          = errors.New("no header row")
)

// LoadError is returned when the source cannot be read at all. It is the
// only fatal error of the loader.
type LoadError struct {
	Path string
	Op   string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q: %s: %v", e.Path, e.Op, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type Options struct {
	// Sheet selects the worksheet of an xlsx source. Empty means the first.
	Sheet string
}

// Read reads the raw table from an .xlsx/.xlsm or .csv file.
func Read(ctx context.Context, path string, opts Options) (Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return readXLSX(ctx, path, opts.Sheet)
	case ".csv":
		return readCSV(path)
	default:
		return Table{}, &LoadError{Path: path, Op: "detect format", Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)}
	}
}

func readXLSX(ctx context.Context, path, sheet string) (Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Table{}, &LoadError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Table{}, &LoadError{Path: path, Op: "select sheet", Err: ErrSheetNotFound}
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return Table{}, &LoadError{Path: path, Op: "select sheet", Err: fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)}
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return Table{}, &LoadError{Path: path, Op: "read rows", Err: err}
	}
	defer rows.Close()

	var t Table
	for rows.Next() {
		select {
		case <-ctx.Done():
			return Table{}, ctx.Err()
		default:
		}

		// Raw values keep numbers free of display formatting such as
		// thousands separators or currency symbols.
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return Table{}, &LoadError{Path: path, Op: "read rows", Err: err}
		}
		if blank(cols) {
			continue
		}
		if t.Columns == nil {
			t.Columns = cols
			continue
		}
		t.Rows = append(t.Rows, cols)
	}
	if err := rows.Error(); err != nil {
		return Table{}, &LoadError{Path: path, Op: "read rows", Err: err}
	}
	if t.Columns == nil {
		return Table{}, &LoadError{Path: path, Op: "read header", Err: ErrNoHeader}
	}
	return t, nil
}

func readCSV(path string) (Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return Table{}, &LoadError{Path: path, Op: "open", Err: err}
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return Table{}, &LoadError{Path: path, Op: "parse csv", Err: err}
	}

	var t Table
	for _, rec := range records {
		if blank(rec) {
			continue
		}
		if t.Columns == nil {
			rec[0] = strings.TrimPrefix(rec[0], "\ufeff")
			t.Columns = rec
			continue
		}
		t.Rows = append(t.Rows, rec)
	}
	if t.Columns == nil {
		return Table{}, &LoadError{Path: path, Op: "read header", Err: ErrNoHeader}
	}
	return t, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
