package io

import (
	"encoding/csv"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/carbocation/pfx"
	"github.com/gonum/matrix/mat64"
)

// LoadCSV reads a numeric csv file (design or contrast matrix) into a
// dense matrix. Every row must have the same number of fields.
func LoadCSV(path string) (*mat64.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	csvReader := csv.NewReader(f)
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(records) == 0 {
		return nil, pfx.Err(fmt.Errorf("%s: empty matrix file", path))
	}

	rows := len(records)
	cols := len(records[0])
	matrix := mat64.NewDense(rows, cols, nil)

	for i, record := range records {
		for j, field := range record {
			value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, pfx.Err(fmt.Errorf("%s row %d col %d: %v", path, i, j, err))
			}
			matrix.Set(i, j, value)
		}
	}

	return matrix, nil
}

// WriteCSV saves a dense matrix as a csv file. Rows are formatted in
// parallel, a stride of CPU-count lines at a time, and written in
// order.
func WriteCSV(path string, matrix *mat64.Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	rows, _ := matrix.Dims()

	stride := runtime.NumCPU()
	formatted := make([]string, stride)

	for row := 0; row < rows; row += stride {
		jobMark := stride
		if row+stride >= rows {
			jobMark = rows - row
		}

		var wg sync.WaitGroup
		wg.Add(jobMark)
		for offset := 0; offset < jobMark; offset++ {
			go formatLine(matrix, formatted, offset, row, &wg)
		}
		wg.Wait()

		for i := 0; i < jobMark; i++ {
			if _, err := fmt.Fprintf(f, "%s\n", formatted[i]); err != nil {
				return pfx.Err(err)
			}
		}
	}

	return nil
}

func formatLine(matrix *mat64.Dense, formatted []string, offset int, row int, wg *sync.WaitGroup) {
	defer wg.Done()

	_, cols := matrix.Dims()

	fields := make([]string, cols)
	for i := 0; i < cols; i++ {
		fields[i] = strconv.FormatFloat(matrix.At(row+offset, i), 'g', -1, 64)
	}

	formatted[offset] = strings.Join(fields, ", ")
}
