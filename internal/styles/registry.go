package styles

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Entry is one permitted document type or citation style.
type Entry struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// catalog is one embedded YAML file: an ordered entry list plus the id
// applied when a document omits the field.
type catalog struct {
	Default string  `yaml:"default"`
	Entries []Entry `yaml:"entries"`
}

// Registry holds the permitted document types and citation styles. The
// document service consults it at write time so stored rows only ever
// carry known identifiers.
type Registry struct {
	documentTypes  catalog
	citationStyles catalog
	mu             sync.RWMutex
}

// NewRegistry creates a registry and loads the embedded YAML catalogs
func NewRegistry() (*Registry, error) {
	r := &Registry{}

	if err := r.loadCatalog("document_types", &r.documentTypes); err != nil {
		return nil, fmt.Errorf("failed to load document types: %w", err)
	}

	if err := r.loadCatalog("citation_styles", &r.citationStyles); err != nil {
		return nil, fmt.Errorf("failed to load citation styles: %w", err)
	}

	return r, nil
}

// loadCatalog loads one embedded YAML catalog file
func (r *Registry) loadCatalog(name string, dest *catalog) error {
	filename := fmt.Sprintf("config/%s.yaml", name)
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := yaml.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}

	if dest.Default == "" || !contains(dest.Entries, dest.Default) {
		return fmt.Errorf("%s: default %q is not among entries", filename, dest.Default)
	}

	return nil
}

// IsDocumentType reports whether id names a permitted document type
func (r *Registry) IsDocumentType(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return contains(r.documentTypes.Entries, id)
}

// IsCitationStyle reports whether id names a permitted citation style
func (r *Registry) IsCitationStyle(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return contains(r.citationStyles.Entries, id)
}

// DefaultDocumentType returns the document type applied when none is given
func (r *Registry) DefaultDocumentType() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.documentTypes.Default
}

// DefaultCitationStyle returns the citation style applied when none is given
func (r *Registry) DefaultCitationStyle() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.citationStyles.Default
}

// DocumentTypes returns all permitted document types (ordered as defined in YAML)
func (r *Registry) DocumentTypes() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.documentTypes.Entries
}

// CitationStyles returns all permitted citation styles (ordered as defined in YAML)
func (r *Registry) CitationStyles() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.citationStyles.Entries
}

func contains(entries []Entry, id string) bool {
	for i := range entries {
		if entries[i].ID == id {
			return true
		}
	}
	return false
}
