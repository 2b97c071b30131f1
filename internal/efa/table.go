// Package efa runs factorability tests, eigenvalue and parallel analysis,
// and exploratory factor analysis over a numeric table.
package efa

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNonNumeric is returned when a table cell is not a number
	ErrNonNumeric = errors.New("non-numeric value")
	// ErrTooFewVariables is returned for tables with fewer than two columns
	ErrTooFewVariables = errors.New("at least two variables are required")
	// ErrTooFewObservations is returned when there are not more rows than columns
	ErrTooFewObservations = errors.New("more observations than variables are required")
	// ErrConstantColumn is returned when a variable has zero variance
	ErrConstantColumn = errors.New("variable has zero variance")
	// ErrSingular is returned when the correlation matrix cannot be inverted
	ErrSingular = errors.New("correlation matrix is singular")
	// ErrNotConverged is returned when an iterative extraction hits its iteration limit
	ErrNotConverged = errors.New("extraction did not converge")
)

// ColumnError locates a problem in one table column
type ColumnError struct {
	Column string
	Row    int // 1-based data row, 0 when the whole column is affected
	Err    error
}

func (e *ColumnError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("column %q row %d: %v", e.Column, e.Row, e.Err)
	}
	return fmt.Sprintf("column %q: %v", e.Column, e.Err)
}

func (e *ColumnError) Unwrap() error {
	return e.Err
}

// Table is a rectangular numeric dataset: rows are observations, columns variables
type Table struct {
	Headings []string
	Data     *mat.Dense
}

// Dims returns observation and variable counts
func (t *Table) Dims() (rows, cols int) {
	return t.Data.Dims()
}

// ReadTable parses a CSV with a header row and numeric cells
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty table: missing header")
	}

	headings := records[0]
	rows := records[1:]
	cols := len(headings)
	if cols < 2 {
		return nil, ErrTooFewVariables
	}
	if len(rows) <= cols {
		return nil, fmt.Errorf("%w: %d rows for %d variables", ErrTooFewObservations, len(rows), cols)
	}

	data := mat.NewDense(len(rows), cols, nil)
	for i, record := range rows {
		for j, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, &ColumnError{Column: headings[j], Row: i + 1, Err: fmt.Errorf("%w: %q", ErrNonNumeric, cell)}
			}
			data.Set(i, j, v)
		}
	}

	return &Table{Headings: headings, Data: data}, nil
}
