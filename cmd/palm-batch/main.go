package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/umcu-VCI-group/2026-petersen-revisiting-lesion-network-mapping/internal/batch"
)

func main() {
	// Run palm over every prepared experiment directory. Each one is
	// expected to already hold input.nii, design.csv and contrast.csv;
	// a directory missing them fails inside palm and the batch moves
	// on (run design-check first to catch that up front).

	var root, palmBin, mask string
	var permutations int

	flag.StringVar(&root, "root", "experiments", "Directory holding one subdirectory per experiment.")
	flag.StringVar(&palmBin, "palm", "palm", "Path to the palm binary (if not already in your PATH as palm).")
	flag.StringVar(&mask, "mask", filepath.Join("templates", "MNI152_T1_2mm_brain_mask.nii"), "Brain mask template shared by every experiment.")
	flag.IntVar(&permutations, "n", 1000, "Number of permutations.")
	flag.Parse()

	cfg := batch.PalmConfig{
		Root:         root,
		PalmBin:      palmBin,
		Mask:         mask,
		Permutations: permutations,
	}

	failed, err := batch.RunPalm(cfg, batch.ExecRunner{})
	if err != nil {
		log.Fatalln(err)
	}
	if failed > 0 {
		log.Fatalf("palm failed for %d experiment(s)\n", failed)
	}
}
