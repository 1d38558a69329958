package models

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// LoadFile picks a loader by extension: .obj files go through LoadOBJ (with
// the .mtl next to them, if there is one), everything else is read as the
// car text format.
func LoadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening model")
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if !strings.EqualFold(filepath.Ext(path), ".obj") {
		return LoadCar(name, f)
	}

	mtlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"
	mtl, err := os.Open(mtlPath)
	if errors.Is(err, os.ErrNotExist) {
		return LoadOBJ(name, f, nil)
	} else if err != nil {
		return nil, errors.Wrap(err, "opening material library")
	}
	defer mtl.Close()

	return LoadOBJ(name, f, mtl)
}
