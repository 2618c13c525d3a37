// Package catalog builds the manual's content catalog from YAML files, PostgreSQL or a
// Redis snapshot, and exports its outline for content reviewers.
package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/p-n-ai/pai-manual/internal/manual"
)

// ManifestFile is the name of the optional manifest inside a content directory.
const ManifestFile = "manual.yaml"

// LoadDir loads every topic group under dir and concatenates them into a validated catalog.
// Groups are taken in manifest order when manual.yaml exists, otherwise in lexical path
// order of the YAML files found under dir.
func LoadDir(dir string) (*manual.StaticCatalog[string], error) {
	paths, err := groupPaths(dir)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	groups := make([][]manual.Section[string], 0, len(paths))
	for _, path := range paths {
		sections, err := loadGroup(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		groups = append(groups, sections)
	}

	cat := manual.NewCatalog(groups...)
	if err := cat.Validate(); err != nil {
		return nil, err
	}

	slog.Info("catalog loaded",
		"groups", len(groups),
		"sections", len(cat.ListSections()),
		"pages", len(cat.Flatten()),
	)
	return cat, nil
}

func groupPaths(dir string) ([]string, error) {
	manifestPath := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(manifestPath)
	switch {
	case err == nil:
		var m Manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", manifestPath, err)
		}
		if len(m.Groups) == 0 {
			return nil, fmt.Errorf("%s lists no groups", manifestPath)
		}
		paths := make([]string, 0, len(m.Groups))
		for _, g := range m.Groups {
			paths = append(paths, filepath.Join(dir, g))
		}
		return paths, nil
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	var paths []string
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func loadGroup(path string) ([]manual.Section[string], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := validateGroup(raw); err != nil {
		return nil, err
	}

	var group GroupFile
	if err := yaml.Unmarshal(data, &group); err != nil {
		return nil, fmt.Errorf("decoding group: %w", err)
	}

	base := filepath.Dir(path)
	sections := make([]manual.Section[string], 0, len(group.Sections))
	for _, sd := range group.Sections {
		s, err := buildSection(sd, base)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, nil
}

func buildSection(sd SectionDoc, base string) (manual.Section[string], error) {
	s := manual.Section[string]{
		ID:          sd.ID,
		Title:       sd.Title,
		Subsections: make([]manual.Subsection[string], 0, len(sd.Subsections)),
	}

	for _, doc := range sd.Subsections {
		content, err := buildContent(doc, base)
		if err != nil {
			return s, fmt.Errorf("%s/%s: %w", sd.ID, doc.ID, err)
		}
		s.Subsections = append(s.Subsections, manual.Subsection[string]{
			ID:             doc.ID,
			Title:          doc.Title,
			Content:        content,
			SearchKeywords: doc.Keywords,
		})
	}
	return s, nil
}

// buildContent merges inline content with content files. A level given both ways is an error.
func buildContent(doc SubsectionDoc, base string) (map[manual.Level]string, error) {
	content := make(map[manual.Level]string, len(doc.Content)+len(doc.ContentFiles))

	for key, text := range doc.Content {
		level, err := manual.ParseLevel(key)
		if err != nil {
			return nil, err
		}
		content[level] = text
	}

	for key, rel := range doc.ContentFiles {
		level, err := manual.ParseLevel(key)
		if err != nil {
			return nil, err
		}
		if _, dup := content[level]; dup {
			return nil, fmt.Errorf("level %s has both inline content and a content file", level)
		}
		data, err := os.ReadFile(filepath.Join(base, rel))
		if err != nil {
			return nil, fmt.Errorf("reading content file: %w", err)
		}
		content[level] = string(data)
	}
	return content, nil
}

// Documents converts a catalog back into its YAML document form, with all content inline.
func Documents(cat manual.Catalog[string]) []SectionDoc {
	sections := cat.ListSections()
	docs := make([]SectionDoc, 0, len(sections))
	for _, s := range sections {
		sd := SectionDoc{ID: s.ID, Title: s.Title}
		for _, sub := range s.Subsections {
			content := make(map[string]string, len(sub.Content))
			for l, text := range sub.Content {
				content[string(l)] = text
			}
			sd.Subsections = append(sd.Subsections, SubsectionDoc{
				ID:       sub.ID,
				Title:    sub.Title,
				Keywords: sub.SearchKeywords,
				Content:  content,
			})
		}
		docs = append(docs, sd)
	}
	return docs
}

// FromDocuments builds a validated catalog from section documents with inline content.
func FromDocuments(docs []SectionDoc) (*manual.StaticCatalog[string], error) {
	sections := make([]manual.Section[string], 0, len(docs))
	for _, sd := range docs {
		s, err := buildSection(sd, "")
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}

	cat := manual.NewCatalog(sections)
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}
