// Package palm assembles command lines for the PALM permutation
// inference tool. PALM itself is treated as a black box: it reads the
// 4D image, design and contrast from disk and writes every result map
// under the output prefix.
package palm

import (
	"strconv"
)

// Options describes a single palm invocation.
type Options struct {
	Input    string // 4D image, one volume per subject
	Design   string // design matrix, csv
	Contrast string // contrast matrix, csv
	Mask     string // brain mask shared by the whole batch

	Permutations int

	TFCE           bool // -T
	TwoTail        bool
	SaveGLM        bool
	SaveParametric bool
	LogP           bool
	FDR            bool

	Output string // prefix; palm names everything under it
}

// Args renders the options as the exact argument vector handed to the
// palm binary. The order is fixed so a batch run is reproducible from
// the log alone.
func (o Options) Args() []string {
	args := []string{
		"-i", o.Input,
		"-d", o.Design,
		"-t", o.Contrast,
	}

	if o.Mask != "" {
		args = append(args, "-m", o.Mask)
	}

	args = append(args, "-n", strconv.Itoa(o.Permutations))

	if o.TFCE {
		args = append(args, "-T")
	}
	if o.TwoTail {
		args = append(args, "-twotail")
	}
	if o.SaveGLM {
		args = append(args, "-saveglm")
	}
	if o.SaveParametric {
		args = append(args, "-saveparametric")
	}
	if o.LogP {
		args = append(args, "-logp")
	}
	if o.FDR {
		args = append(args, "-fdr")
	}

	args = append(args, "-o", o.Output)

	return args
}
