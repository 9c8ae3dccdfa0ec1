// Package batch drives the external tools over a root of experiment
// directories, one directory at a time. Each experiment directory is
// prepared elsewhere and holds some subset of the fixed layout below;
// the drivers only ever add files, never edit or remove inputs.
package batch

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/carbocation/pfx"

	"github.com/umcu-VCI-group/2026-petersen-revisiting-lesion-network-mapping/internal/palm"
)

// Fixed per-experiment file names.
const (
	PathsFileName    = "input_paths.txt"
	ImageFileName    = "input.nii"
	DesignFileName   = "design.csv"
	ContrastFileName = "contrast.csv"
	ResultsPrefix    = "results"
)

// ListExperiments returns the immediate subdirectories of root in
// lexical order. Plain files under root are ignored.
func ListExperiments(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, pfx.Err(err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(root, entry.Name()))
		}
	}

	return dirs, nil
}

// PalmOptions builds the fixed study invocation for one experiment
// directory: 1000 permutations by default, two-tailed, TFCE,
// FDR-adjusted, GLM and parametric outputs saved, p-values as
// -log10(p).
func PalmOptions(dir, mask string, permutations int) palm.Options {
	return palm.Options{
		Input:          filepath.Join(dir, ImageFileName),
		Design:         filepath.Join(dir, DesignFileName),
		Contrast:       filepath.Join(dir, ContrastFileName),
		Mask:           mask,
		Permutations:   permutations,
		TFCE:           true,
		TwoTail:        true,
		SaveGLM:        true,
		SaveParametric: true,
		LogP:           true,
		FDR:            true,
		Output:         filepath.Join(dir, ResultsPrefix),
	}
}

// ConcatConfig is the per-run configuration of the concatenation
// driver, built once in main and never mutated.
type ConcatConfig struct {
	Root   string // directory holding one subdirectory per experiment
	Helper string // concatenation helper binary
	Jobs   int    // parallelism hint forwarded to the helper, -1 = all CPUs
}

// RunConcat walks the experiment directories under cfg.Root and runs
// the concatenation helper once per directory that has a volume list.
// Directories without one are skipped with a diagnostic. A failing
// helper is logged and the batch moves on; the number of failed
// directories is returned so the caller can exit non-zero.
func RunConcat(cfg ConcatConfig, runner Runner) (failed int, err error) {
	dirs, err := ListExperiments(cfg.Root)
	if err != nil {
		return 0, err
	}

	for _, dir := range dirs {
		pathsFile := filepath.Join(dir, PathsFileName)
		if _, err := os.Stat(pathsFile); err != nil {
			fmt.Printf("Skipping %s: no %s\n", dir, PathsFileName)
			continue
		}

		outFile := filepath.Join(dir, ImageFileName)
		fmt.Printf("Concatenating %s -> %s\n", pathsFile, outFile)

		// Argument order is part of the helper contract:
		// paths file, output file, parallelism hint.
		out, err := runner.Run(cfg.Helper, pathsFile, outFile, strconv.Itoa(cfg.Jobs))
		if err != nil {
			log.Printf("%s: helper failed: %v\nOutput: %s", dir, err, out)
			failed++
		}
	}

	return failed, nil
}

// PalmConfig is the per-run configuration of the analysis driver.
type PalmConfig struct {
	Root         string
	PalmBin      string
	Mask         string // shared template mask, identical for every experiment
	Permutations int
}

// RunPalm invokes palm once for every experiment directory under
// cfg.Root. No precondition is checked here: a directory missing its
// inputs fails inside palm and is reported like any other failure.
// Pre-flight validation is the job of design-check.
func RunPalm(cfg PalmConfig, runner Runner) (failed int, err error) {
	dirs, err := ListExperiments(cfg.Root)
	if err != nil {
		return 0, err
	}

	for _, dir := range dirs {
		opts := PalmOptions(dir, cfg.Mask, cfg.Permutations)
		fmt.Printf("Running palm on %s\n", dir)

		out, err := runner.Run(cfg.PalmBin, opts.Args()...)
		if err != nil {
			log.Printf("%s: palm failed: %v\nOutput: %s", dir, err, out)
			failed++
		}
	}

	return failed, nil
}
