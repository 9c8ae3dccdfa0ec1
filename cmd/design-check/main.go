package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/KyungWonPark/nifti"

	"github.com/umcu-VCI-group/2026-petersen-revisiting-lesion-network-mapping/internal/batch"
	"github.com/umcu-VCI-group/2026-petersen-revisiting-lesion-network-mapping/internal/cat"
	"github.com/umcu-VCI-group/2026-petersen-revisiting-lesion-network-mapping/internal/io"
)

func main() {
	// Pre-flight for palm-batch: per experiment directory, the design
	// matrix must have one row per listed volume and the contrast
	// matrix one column per design column. Kept separate from the
	// analysis driver on purpose; palm-batch runs unconditionally.

	var root, mask string

	flag.StringVar(&root, "root", "experiments", "Directory holding one subdirectory per experiment.")
	flag.StringVar(&mask, "mask", "", "Optional template mask; its grid is compared against each experiment's first listed volume.")
	flag.Parse()

	dirs, err := batch.ListExperiments(root)
	if err != nil {
		log.Fatalln(err)
	}

	var maskHeader nifti.Nifti1Header
	if mask != "" {
		maskHeader.LoadHeader(mask)
	}

	problems := 0
	for _, dir := range dirs {
		problems += checkDir(dir, mask, maskHeader)
	}

	if problems > 0 {
		log.Fatalf("Found %d problem(s)\n", problems)
	}
	fmt.Println("All experiment directories look consistent.")
}

func checkDir(dir, mask string, maskHeader nifti.Nifti1Header) int {
	problems := 0

	paths, err := cat.ReadPathsFile(filepath.Join(dir, batch.PathsFileName))
	if err != nil {
		fmt.Printf("%s: cannot read volume list: %v\n", dir, err)
		return 1
	}

	design, err := io.LoadCSV(filepath.Join(dir, batch.DesignFileName))
	if err != nil {
		fmt.Printf("%s: cannot read design matrix: %v\n", dir, err)
		problems++
	}

	contrast, err := io.LoadCSV(filepath.Join(dir, batch.ContrastFileName))
	if err != nil {
		fmt.Printf("%s: cannot read contrast matrix: %v\n", dir, err)
		problems++
	}

	if design != nil {
		designRows, designCols := design.Dims()

		if designRows != len(paths) {
			fmt.Printf("%s: design has %d rows but %d volumes are listed\n", dir, designRows, len(paths))
			problems++
		}

		if contrast != nil {
			_, contrastCols := contrast.Dims()
			if contrastCols != designCols {
				fmt.Printf("%s: contrast has %d columns but design has %d\n", dir, contrastCols, designCols)
				problems++
			}
		}
	}

	if mask != "" {
		if _, err := os.Stat(paths[0]); err != nil {
			fmt.Printf("%s: first listed volume missing: %v\n", dir, err)
			return problems + 1
		}

		var volHeader nifti.Nifti1Header
		volHeader.LoadHeader(paths[0])

		for axis := 1; axis <= 3; axis++ {
			if volHeader.Dim[axis] != maskHeader.Dim[axis] {
				fmt.Printf("%s: volume grid (%d, %d, %d) does not match mask grid (%d, %d, %d)\n",
					dir,
					volHeader.Dim[1], volHeader.Dim[2], volHeader.Dim[3],
					maskHeader.Dim[1], maskHeader.Dim[2], maskHeader.Dim[3])
				problems++
				break
			}
		}
	}

	return problems
}
