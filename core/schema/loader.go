package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// excludedDirs are conventional non-schema directories skipped entirely.
var excludedDirs = map[string]struct{}{
	"node_modules":     {},
	"vendor":           {},
	"bower_components": {},
	".git":             {},
	".svn":             {},
	".hg":              {},
	".idea":            {},
	".vscode":          {},
	"dist":             {},
	"build":            {},
	"out":              {},
	"target":           {},
	"coverage":         {},
	"__pycache__":      {},
	".cache":           {},
}

// excludedFiles are well-known tool/manifest files that happen to use
// schema file extensions.
var excludedFiles = map[string]struct{}{
	"package.json":       {},
	"package-lock.json":  {},
	"yarn.lock":          {},
	"composer.json":      {},
	"composer.lock":      {},
	"tsconfig.json":      {},
	"jsconfig.json":      {},
	"jest.config.json":   {},
	"babel.config.json":  {},
	".eslintrc.json":     {},
	".eslintrc.yaml":     {},
	".eslintrc.yml":      {},
	".prettierrc.json":   {},
	".prettierrc.yaml":   {},
	".prettierrc.yml":    {},
	".markdownlint.json": {},
	"renovate.json":      {},
}

// Loader reads every schema document under a snapshot root.
type Loader struct {
	logger zerolog.Logger
}

// NewLoader creates a snapshot loader.
func NewLoader(logger zerolog.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load walks root recursively and returns one File per parseable
// JSON/YAML document not excluded by convention. A missing root yields
// an empty snapshot. Files that fail to parse are logged and skipped;
// only the walk itself can fail.
func (l *Loader) Load(root string) ([]File, error) {
	if _, err := os.Stat(root); os.IsNotExist(err) {
		l.logger.Warn().Str("dir", root).Msg("snapshot directory missing, treating as empty")
		return nil, nil
	}

	var files []File

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if _, skip := excludedDirs[name]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if !includeFile(rel, name) {
			return nil
		}

		content, err := parseFile(path)
		if err != nil {
			l.logger.Warn().Str("file", rel).Err(err).Msg("skipping unparseable schema file")
			return nil
		}

		normalized := Normalize(content)
		files = append(files, File{
			Path:    rel,
			Content: normalized,
			Type:    DetectType(rel, normalized),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk snapshot %s: %w", root, err)
	}

	l.logger.Debug().Str("dir", root).Int("files", len(files)).Msg("snapshot loaded")
	return files, nil
}

// includeFile applies the exclusion rules to one walked file.
func includeFile(rel, name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
	default:
		return false
	}

	if _, skip := excludedFiles[name]; skip {
		return false
	}

	// Tooling trees hold generator config, not contracts. Their one
	// contract-relevant file is the literal config.json.
	for _, seg := range strings.Split(rel, "/") {
		if seg == "tooling" {
			return name == "config.json"
		}
	}

	return true
}

// parseFile decodes one document, JSON as JSON and YAML as YAML.
func parseFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var content any
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, &content); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		return content, nil
	}

	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return content, nil
}
