package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/apidocgen/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocgen/internal/observability"
)

// TocEntry is one node of the root index enumerating top-level identifiers.
type TocEntry struct {
	UID   string     `yaml:"uid"`
	Name  string     `yaml:"name"`
	Items []TocEntry `yaml:"items"`
}

// Document is one structured metadata document for a top-level identifier.
type Document struct {
	Items      []*Item     `yaml:"items"`
	References []Reference `yaml:"references"`
}

// ParseDocument parses one metadata document. The `### YamlMime:...` banner
// some generators emit is a YAML comment and needs no special handling.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapError(err, errors.CategoryMetadata, "malformed metadata document").
			WithSeverity(errors.SeverityFatal).Build()
	}
	return &doc, nil
}

// ParseToc parses the root index.
func ParseToc(data []byte) ([]TocEntry, error) {
	var entries []TocEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.WrapError(err, errors.CategoryMetadata, "malformed root index").
			WithSeverity(errors.SeverityFatal).Build()
	}
	return entries, nil
}

// LoadDirectory populates a fresh store from a metadata directory: a root
// index `toc.yml` plus one `<uid>.yml` document per top-level identifier.
// The returned store is fully populated but not finalized.
func LoadDirectory(ctx context.Context, dir string) (*Store, error) {
	tocPath := filepath.Join(dir, "toc.yml")
	tocData, err := os.ReadFile(tocPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "root index not readable").
			WithSeverity(errors.SeverityFatal).
			WithContext("path", tocPath).Build()
	}

	toc, err := ParseToc(tocData)
	if err != nil {
		return nil, err
	}

	store := NewStore()
	for _, entry := range toc {
		if entry.UID == "" {
			continue
		}
		docPath := filepath.Join(dir, entry.UID+".yml")
		data, err := os.ReadFile(docPath)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem,
				fmt.Sprintf("metadata document for %q not readable", entry.UID)).
				WithSeverity(errors.SeverityFatal).
				WithContext("path", docPath).Build()
		}
		if err := PopulateFromDocument(store, data); err != nil {
			if classified, ok := errors.AsClassified(err); ok {
				return nil, classified.WithContext("path", docPath)
			}
			return nil, err
		}
		observability.DebugContext(ctx, "Loaded metadata document",
			slog.String("uid", entry.UID), slog.Int("items", store.Len()))
	}

	return store, nil
}

// PopulateFromDocument parses one document and inserts its items and
// references into the store.
func PopulateFromDocument(store *Store, data []byte) error {
	doc, err := ParseDocument(data)
	if err != nil {
		return err
	}
	for _, it := range doc.Items {
		if err := store.AddItem(it); err != nil {
			return err
		}
	}
	for _, ref := range doc.References {
		store.AddReference(ref)
	}
	return nil
}
