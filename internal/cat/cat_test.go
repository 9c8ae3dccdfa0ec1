package cat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KyungWonPark/nifti"
)

func writeVolume(t *testing.T, path string, nx, ny, nz int, fill func(x, y, z int) float32) {
	t.Helper()

	img := nifti.NewImg(nx, ny, nz, 1)
	img.SetHeaderDim(nx, ny, nz, 1)
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				img.SetAt(uint32(x), uint32(y), uint32(z), 0, fill(x, y, z))
			}
		}
	}
	// The library's Save always appends ".gz" to the name it is given.
	img.Save(strings.TrimSuffix(path, ".gz"))
}

func writePathsFile(t *testing.T, path string, lines ...string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestReadPathsFileDropsBlankLines(t *testing.T) {
	dir := t.TempDir()
	pathsFile := filepath.Join(dir, "input_paths.txt")
	writePathsFile(t, pathsFile, "a.nii", "", "  ", "b.nii")

	paths, err := ReadPathsFile(pathsFile)
	if err != nil {
		t.Fatal(err)
	}

	if len(paths) != 2 || paths[0] != "a.nii" || paths[1] != "b.nii" {
		t.Errorf("paths = %v, want [a.nii b.nii]", paths)
	}
}

func TestReadPathsFileEmpty(t *testing.T) {
	dir := t.TempDir()
	pathsFile := filepath.Join(dir, "input_paths.txt")
	writePathsFile(t, pathsFile, "", "   ")

	if _, err := ReadPathsFile(pathsFile); err == nil {
		t.Error("expected an error for a volume list with no paths")
	}
}

func TestReadPathsFileMissing(t *testing.T) {
	if _, err := ReadPathsFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected an error for a missing volume list")
	}
}

func TestConcatStacksVolumes(t *testing.T) {
	dir := t.TempDir()

	volA := filepath.Join(dir, "a.nii.gz")
	volB := filepath.Join(dir, "b.nii.gz")
	writeVolume(t, volA, 3, 4, 5, func(x, y, z int) float32 { return float32(x + 10*y + 100*z) })
	writeVolume(t, volB, 3, 4, 5, func(x, y, z int) float32 { return float32(2 * (x + 10*y + 100*z)) })

	pathsFile := filepath.Join(dir, "input_paths.txt")
	writePathsFile(t, pathsFile, volA, volB)

	outFile := filepath.Join(dir, "input.nii")
	if err := Concat(pathsFile, outFile, 1); err != nil {
		t.Fatal(err)
	}

	var header nifti.Nifti1Header
	header.LoadHeader(outFile + ".gz")
	if header.Dim[1] != 3 || header.Dim[2] != 4 || header.Dim[3] != 5 || header.Dim[4] != 2 {
		t.Errorf("output dims = %v, want [3 4 5 2]", header.Dim[1:5])
	}

	var img nifti.Nifti1Image
	img.LoadImage(outFile+".gz", true)

	// Spot-check a voxel per timepoint: (2, 3, 4) holds 432 in the
	// first volume and 864 in the second.
	if got := img.GetAt(2, 3, 4, 0); got != 432 {
		t.Errorf("voxel (2,3,4,0) = %v, want 432", got)
	}
	if got := img.GetAt(2, 3, 4, 1); got != 864 {
		t.Errorf("voxel (2,3,4,1) = %v, want 864", got)
	}
}

func TestConcatShapeMismatch(t *testing.T) {
	dir := t.TempDir()

	volA := filepath.Join(dir, "a.nii.gz")
	volB := filepath.Join(dir, "b.nii.gz")
	writeVolume(t, volA, 3, 4, 5, func(x, y, z int) float32 { return 1 })
	writeVolume(t, volB, 4, 4, 5, func(x, y, z int) float32 { return 1 })

	pathsFile := filepath.Join(dir, "input_paths.txt")
	writePathsFile(t, pathsFile, volA, volB)

	outFile := filepath.Join(dir, "input.nii")
	err := Concat(pathsFile, outFile, 1)
	if err == nil {
		t.Fatal("expected a shape mismatch error")
	}
	if !strings.Contains(err.Error(), "shape mismatch") {
		t.Errorf("err = %v, want a shape mismatch", err)
	}
	if _, statErr := os.Stat(outFile + ".gz"); statErr == nil {
		t.Error("output file written despite shape mismatch")
	}
}

func TestConcatMissingVolume(t *testing.T) {
	dir := t.TempDir()

	volA := filepath.Join(dir, "a.nii.gz")
	writeVolume(t, volA, 3, 4, 5, func(x, y, z int) float32 { return 1 })

	pathsFile := filepath.Join(dir, "input_paths.txt")
	writePathsFile(t, pathsFile, volA, filepath.Join(dir, "missing.nii"))

	if err := Concat(pathsFile, filepath.Join(dir, "input.nii"), 1); err == nil {
		t.Error("expected an error for a missing volume")
	}
}
