package archivefs

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest lists archived seasons for external readers.
type Manifest struct {
	Version     int         `json:"version"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Seasons     SeasonsMeta `json:"seasons"`
}

type SeasonsMeta struct {
	IDs         []int64   `json:"ids"`
	LastSettled time.Time `json:"lastSettled"`
}

func defaultManifest() Manifest {
	return Manifest{
		Version: 1,
		Seasons: SeasonsMeta{IDs: []int64{}},
	}
}

// ReadManifest loads the manifest under basePath.
func ReadManifest(basePath string) (Manifest, error) {
	f, err := os.Open(ManifestPath(basePath))
	if err != nil {
		return defaultManifest(), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(), err
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest, now time.Time) error {
	m.GeneratedAt = now
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(ManifestPath(basePath), data)
}

func writeAtomic(target string, data []byte) error {
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
