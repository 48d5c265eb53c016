package utils

import "path/filepath"

// DataFolder is the directory relative report paths are written to, the
// directory of the loaded .nimp.yaml.
var DataFolder string

func PathData(p ...string) string {
	pj := filepath.Join(p...)
	if pj == "" || filepath.IsAbs(pj) {
		return pj
	}
	return filepath.Join(DataFolder, pj)
}
