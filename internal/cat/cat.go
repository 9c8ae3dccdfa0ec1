// Package cat stacks 3D NIfTI volumes into a single 4D image. It
// replaces the mrcat step of the original pipeline: every subject map
// listed in a volume list file becomes one timepoint of the output.
package cat

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/KyungWonPark/nifti"
	"github.com/carbocation/pfx"
)

// ReadPathsFile returns the non-blank lines of a volume list file,
// one path per line, in file order.
func ReadPathsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	if len(paths) == 0 {
		return nil, pfx.Err(fmt.Errorf("no file paths found in %s", path))
	}

	return paths, nil
}

// Concat reads the volume list at pathsFile, loads every listed 3D
// volume, and writes them as one 4D image to outPath. The first
// volume fixes the reference grid and header; any later volume on a
// different grid fails the whole concatenation. jobs bounds the
// number of concurrent volume loads, 1 means strictly sequential and
// a negative value uses all CPUs.
func Concat(pathsFile, outPath string, jobs int) error {
	fmt.Printf("Reading image list from: %s\n", pathsFile)

	paths, err := ReadPathsFile(pathsFile)
	if err != nil {
		return err
	}

	if jobs < 0 {
		jobs = runtime.NumCPU()
	}
	if jobs == 0 {
		jobs = 1
	}

	fmt.Printf("Found %d images to concatenate. Using %d worker(s).\n", len(paths), jobs)

	// The first volume is loaded up front: its grid is the reference
	// every other volume must match, and its header seeds the output.
	var refHeader nifti.Nifti1Header
	if _, err := os.Stat(paths[0]); err != nil {
		return pfx.Err(err)
	}
	refHeader.LoadHeader(paths[0])

	nx := int(refHeader.Dim[1])
	ny := int(refHeader.Dim[2])
	nz := int(refHeader.Dim[3])
	fmt.Printf("Reference 3D shape set to: (%d, %d, %d)\n", nx, ny, nz)

	volumes := make([]*nifti.Nifti1Image, len(paths))
	errs := make([]error, len(paths))

	order := make(chan int, jobs)
	var wg sync.WaitGroup
	wg.Add(len(paths))

	for i := 0; i < jobs; i++ {
		go func() {
			for idx := range order {
				volumes[idx], errs[idx] = loadVolume(paths[idx], nx, ny, nz)
				wg.Done()
			}
		}()
	}

	for i := range paths {
		order <- i
	}
	close(order)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	out := nifti.NewImg(nx, ny, nz, len(paths))
	out.SetNewHeader(refHeader)
	out.SetHeaderDim(nx, ny, nz, len(paths))

	for t, vol := range volumes {
		for z := 0; z < nz; z++ {
			for y := 0; y < ny; y++ {
				for x := 0; x < nx; x++ {
					out.SetAt(uint32(x), uint32(y), uint32(z), uint32(t), vol.GetAt(uint32(x), uint32(y), uint32(z), 0))
				}
			}
		}
	}

	fmt.Printf("Final 4D data shape: (%d, %d, %d, %d)\n", nx, ny, nz, len(paths))

	out.Save(outPath)
	fmt.Printf("Saved concatenated image to: %s\n", outPath)

	return nil
}

func loadVolume(path string, nx, ny, nz int) (*nifti.Nifti1Image, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, pfx.Err(err)
	}

	var header nifti.Nifti1Header
	header.LoadHeader(path)

	if int(header.Dim[1]) != nx || int(header.Dim[2]) != ny || int(header.Dim[3]) != nz {
		return nil, pfx.Err(fmt.Errorf(
			"shape mismatch: %s has shape (%d, %d, %d), expected (%d, %d, %d)",
			path, header.Dim[1], header.Dim[2], header.Dim[3], nx, ny, nz))
	}

	img := new(nifti.Nifti1Image)
	img.LoadImage(path, true)

	return img, nil
}
