// Package config loads the batch driver's and enrichment test's tunables
// from an optional TOML file, layered under CLI flag overrides the way a
// typical Go CLI tool layers file-config-then-flags.
package config

import (
	"github.com/BurntSushi/toml"

	"github.com/jolespin/keggprofiler/enrichment"
)

// Profile is the profiler's runtime configuration.
type Profile struct {
	NJobs     int               `toml:"n_jobs"`
	FDRMethod enrichment.Method `toml:"-"`
	FDRName   string            `toml:"fdr_method"`
	Tolerance float64           `toml:"tolerance"`
	IndexName string            `toml:"index_name"`
}

// Default returns the profiler's built-in defaults.
func Default() Profile {
	return Profile{
		NJobs:     0,
		FDRMethod: enrichment.MethodBH,
		FDRName:   "benjamini-hochberg",
		Tolerance: 0,
		IndexName: "id_genome",
	}
}

// LoadTOML reads a Profile from a TOML file, starting from Default() so
// the file only needs to set the fields it wants to override.
func LoadTOML(path string) (Profile, error) {
	p := Default()
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Profile{}, err
	}
	p.FDRMethod = ParseMethod(p.FDRName)

	return p, nil
}

// ParseMethod maps an FDR method name (as it appears in a TOML profile or
// a CLI flag) to a Method, falling back to MethodBH for anything it
// doesn't recognize.
func ParseMethod(name string) enrichment.Method {
	if name == "benjamini-yekutieli" {
		return enrichment.MethodBY
	}

	return enrichment.MethodBH
}
