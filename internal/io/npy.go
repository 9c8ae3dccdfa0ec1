// Package io reads and writes the small tabular artifacts around the
// imaging pipeline: csv design and contrast matrices, and npy dumps
// consumed by the Python side of the study.
package io

import (
	"github.com/carbocation/pfx"
	"github.com/gonum/matrix/mat64"
	"github.com/kshedden/gonpy"
)

// WriteNpy writes a dense matrix to a Python numpy npy binary file.
func WriteNpy(path string, matrix *mat64.Dense) error {
	rows, cols := matrix.Dims()
	rawMat := matrix.RawMatrix()

	w, err := gonpy.NewFileWriter(path)
	if err != nil {
		return pfx.Err(err)
	}
	w.Shape = []int{rows, cols}
	w.Version = 2

	if err := w.WriteFloat64(rawMat.Data); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// ReadNpy reads a Python numpy npy binary file as a dense matrix.
func ReadNpy(path string) (*mat64.Dense, error) {
	r, err := gonpy.NewFileReader(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	rows := r.Shape[0]
	cols := r.Shape[1]
	data, err := r.GetFloat64()
	if err != nil {
		return nil, pfx.Err(err)
	}

	return mat64.NewDense(rows, cols, data), nil
}
