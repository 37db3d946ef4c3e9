package storage

import "time"

// Config holds storage configuration
type Config struct {
	Type      string // "file" or "postgres"
	FileName  string // Document file name inside every location
	Locations []LocationConfig
	IOTimeout time.Duration
}

// LocationConfig names one candidate root directory
type LocationConfig struct {
	Name string
	Path string
}

// NewLocations builds local directory locations in the configured order
func NewLocations(cfg Config) []Location {
	locations := make([]Location, 0, len(cfg.Locations))
	for _, lc := range cfg.Locations {
		locations = append(locations, NewLocalDirectory(lc.Name, lc.Path, cfg.IOTimeout))
	}
	return locations
}
