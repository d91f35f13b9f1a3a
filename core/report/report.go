// Package report assembles and persists the diff report.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/artpar/contractdiff/core/classify"
	"github.com/artpar/contractdiff/core/version"
	"github.com/artpar/contractdiff/ports"
)

// Counts summarizes the classification per bucket.
type Counts struct {
	Breaking int `json:"breaking"`
	Additive int `json:"additive"`
	DocsOnly int `json:"docsOnly"`
	Refactor int `json:"refactor"`
	Total    int `json:"total"`
}

// Report is the immutable aggregate written once per run.
type Report struct {
	RunID          string                  `json:"runId"`
	GeneratedAt    string                  `json:"generatedAt"`
	Classification classify.Classification `json:"classification"`
	Version        version.Info            `json:"version"`
	Counts         Counts                  `json:"counts"`
}

// Build assembles a report from the pipeline outputs.
func Build(idgen ports.IDGenerator, clock ports.Clock, cls classify.Classification, vi version.Info) *Report {
	return &Report{
		RunID:          idgen.New(),
		GeneratedAt:    clock.Now().UTC().Format(time.RFC3339),
		Classification: cls,
		Version:        vi,
		Counts: Counts{
			Breaking: len(cls.Breaking),
			Additive: len(cls.Additive),
			DocsOnly: len(cls.DocsOnly),
			Refactor: len(cls.Refactor),
			Total:    cls.Total(),
		},
	}
}

// Write persists the report as pretty JSON, fully replacing any
// existing file. Marshaling happens before the file is touched so a
// failed run never leaves a partial report behind.
func (r *Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
