package config

import "strings"

// ArchiveConfig selects where settled seasons are stored.
type ArchiveConfig struct {
	Backend    string
	SQLitePath string
	Dir        string
}

func loadArchive(raw rawEnv) ArchiveConfig {
	backend := strings.ToLower(stringOrDefault(raw.ArchiveBackend, defaultArchiveBackend))
	switch backend {
	case ArchiveMemory, ArchiveSQLite, ArchiveFS:
	default:
		backend = defaultArchiveBackend
	}
	return ArchiveConfig{
		Backend:    backend,
		SQLitePath: stringOrDefault(raw.ArchiveSQLite, defaultArchiveSQLite),
		Dir:        stringOrDefault(raw.ArchiveDir, defaultArchiveDir),
	}
}
