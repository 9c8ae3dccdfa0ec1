package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/KyungWonPark/nifti"
	"github.com/gonum/matrix/mat64"

	"github.com/umcu-VCI-group/2026-petersen-revisiting-lesion-network-mapping/internal/io"
)

func main() { // fileName timepoint(0)
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: nii2npy <image.nii> [timepoint]")
		os.Exit(1)
	}

	fileName := os.Args[1]
	fmt.Printf("Processing: %s\n", fileName)

	timepoint := 0
	if len(os.Args) >= 3 {
		timepoint, _ = strconv.Atoi(os.Args[2])
	}

	var header nifti.Nifti1Header
	header.LoadHeader(fileName)

	nx := int(header.Dim[1])
	ny := int(header.Dim[2])
	nz := int(header.Dim[3])

	var img nifti.Nifti1Image
	img.LoadImage(fileName, true)

	// One row per z slice, the slice flattened row-major over (y, x).
	matrix := mat64.NewDense(nz, nx*ny, nil)
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				matrix.Set(z, y*nx+x, float64(img.GetAt(uint32(x), uint32(y), uint32(z), uint32(timepoint))))
			}
		}
	}

	if err := io.WriteNpy(fileName+".npy", matrix); err != nil {
		log.Fatalln(err)
	}

	fmt.Println("Finished.")
}
