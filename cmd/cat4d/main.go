package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/umcu-VCI-group/2026-petersen-revisiting-lesion-network-mapping/internal/cat"
)

func main() { // inputPathsFile outputFile jobs(-1)
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: cat4d <input-paths-file> <output-file> [jobs]")
		os.Exit(1)
	}

	jobs := -1
	if len(os.Args) >= 4 {
		j, err := strconv.Atoi(os.Args[3])
		if err != nil {
			log.Fatalf("Bad jobs value %q: %v\n", os.Args[3], err)
		}
		jobs = j
	}

	if err := cat.Concat(os.Args[1], os.Args[2], jobs); err != nil {
		log.Fatalln(err)
	}
}
