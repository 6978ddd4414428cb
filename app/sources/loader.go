package sources

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and validation of source configurations.
type Loader struct {
	sourcesDir string
}

func NewLoader(sourcesDir string) *Loader {
	return &Loader{sourcesDir: sourcesDir}
}

// LoadAll loads all YAML source files from the sources directory. The
// result is ordered by file name so that a run always processes (and
// reports) sources in the same order.
func (l *Loader) LoadAll() ([]Source, error) {
	if _, err := os.Stat(l.sourcesDir); os.IsNotExist(err) {
		return nil, nil
	}

	files, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}

	ymlFiles, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	files = append(files, ymlFiles...)
	sort.Strings(files)

	sources := make([]Source, 0, len(files))
	for _, file := range files {
		src, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		if err := l.validate(src); err != nil {
			return nil, fmt.Errorf("invalid source %s: %w", file, err)
		}

		if !src.Enabled {
			slog.Debug("Source disabled, skipping", "source", src.Name, "file", file)
			continue
		}

		sources = append(sources, *src)
		slog.Debug("Loaded source configuration", "source", src.Name, "file", file)
	}

	return sources, nil
}

func (l *Loader) loadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var src Source
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	l.setDefaults(&src)

	return &src, nil
}

func (l *Loader) setDefaults(src *Source) {
	if src.Timeout == 0 {
		src.Timeout = 10 // seconds
	}
	if src.PageURL != "" {
		if u, err := url.Parse(src.PageURL); err == nil {
			if src.BaseURL == "" {
				src.BaseURL = u.Scheme + "://" + u.Host
			}
			if src.ArticlePath == "" {
				src.ArticlePath = u.Path
			}
		}
	}
}

func (l *Loader) validate(src *Source) error {
	if src.Name == "" {
		return fmt.Errorf("source name is required")
	}
	if src.FeedURL == "" && src.PageURL == "" && src.SitemapURL == "" {
		return fmt.Errorf("at least one entry point (feed_url, page_url or sitemap_url) is required")
	}
	if src.Render && src.PageURL == "" {
		return fmt.Errorf("render requires page_url")
	}
	if src.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative")
	}
	return nil
}
