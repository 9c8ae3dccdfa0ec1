package main

import (
	"flag"
	"log"

	"github.com/umcu-VCI-group/2026-petersen-revisiting-lesion-network-mapping/internal/batch"
)

func main() {
	// For every experiment directory that has a volume list, run the
	// concatenation helper to build the 4D input image. Directories
	// still missing their list are skipped, not failed.

	var root, helper string
	var jobs int

	flag.StringVar(&root, "root", "experiments", "Directory holding one subdirectory per experiment.")
	flag.StringVar(&helper, "helper", "cat4d", "Concatenation helper binary (if not in your PATH, give the full path).")
	flag.IntVar(&jobs, "jobs", -1, "Parallelism hint forwarded to the helper; -1 uses all CPUs, 1 is strictly sequential.")
	flag.Parse()

	cfg := batch.ConcatConfig{
		Root:   root,
		Helper: helper,
		Jobs:   jobs,
	}

	failed, err := batch.RunConcat(cfg, batch.ExecRunner{})
	if err != nil {
		log.Fatalln(err)
	}
	if failed > 0 {
		log.Fatalf("Concatenation failed for %d experiment(s)\n", failed)
	}
}
