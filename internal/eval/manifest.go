// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package eval

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// Manifest describes one harness run: when it ran, how many cycles per
// configuration, and which groups each experiment selected. It is
// written next to the results table so a table can always be traced
// back to the exact matrix that produced it.
type Manifest struct {
	StartedAt     time.Time       `yaml:"started_at"`
	RunsPerConfig int             `yaml:"runs_per_config"`
	Experiments   []ManifestEntry `yaml:"experiments"`
}

// ManifestEntry is one experiment's identity in the manifest.
type ManifestEntry struct {
	Name      string `yaml:"name"`
	Catalogue string `yaml:"catalogue"`
	Groups    string `yaml:"groups"`
}

// WriteManifest writes the YAML manifest for a run.
func WriteManifest(path string, startedAt time.Time, runsPerConfig int, exps []Experiment) error {
	m := Manifest{
		StartedAt:     startedAt.UTC(),
		RunsPerConfig: runsPerConfig,
	}
	for _, exp := range exps {
		m.Experiments = append(m.Experiments, ManifestEntry{
			Name:      exp.Name,
			Catalogue: string(exp.Catalogue),
			Groups:    strings.Join(exp.Groups.Sorted(), ","),
		})
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}
