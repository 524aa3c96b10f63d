package archivefs

import (
	"path/filepath"
	"strconv"
)

const (
	seasonsDir   = "seasons"
	manifestName = "manifest.json"
)

// SeasonPath builds the path to an archived season file.
func SeasonPath(basePath string, id int64) string {
	return filepath.Join(basePath, seasonsDir, strconv.FormatInt(id, 10)+".json")
}

// ManifestPath builds the path to the archive manifest.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, manifestName)
}
