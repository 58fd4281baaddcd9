package registry

import "fmt"

// Document is one registered source document: the external editor's document
// id, the route it is served under, and a short name used as its cache key.
type Document struct {
	ExternalID string `json:"external_id"`
	Route      string `json:"route"`
	Name       string `json:"name"`
}

// Registry is the immutable set of documents known to this deployment.
// It is built once at startup and only ever consulted for lookups.
type Registry struct {
	byID   map[string]Document
	byName map[string]Document
	docs   []Document
}

// New builds a registry from the configured documents. Duplicate external
// ids and duplicate names are rejected.
func New(docs []Document) (*Registry, error) {
	r := &Registry{
		byID:   make(map[string]Document, len(docs)),
		byName: make(map[string]Document, len(docs)),
		docs:   make([]Document, 0, len(docs)),
	}
	for _, d := range docs {
		if d.ExternalID == "" {
			return nil, fmt.Errorf("document %q: external id is required", d.Name)
		}
		if d.Name == "" {
			return nil, fmt.Errorf("document %q: name is required", d.ExternalID)
		}
		if _, exists := r.byID[d.ExternalID]; exists {
			return nil, fmt.Errorf("duplicate document id %q", d.ExternalID)
		}
		if _, exists := r.byName[d.Name]; exists {
			return nil, fmt.Errorf("duplicate document name %q", d.Name)
		}
		r.byID[d.ExternalID] = d
		r.byName[d.Name] = d
		r.docs = append(r.docs, d)
	}
	return r, nil
}

// Lookup returns the document registered under the given external id.
func (r *Registry) Lookup(externalID string) (Document, bool) {
	d, ok := r.byID[externalID]
	return d, ok
}

// ByName returns the document registered under the given name.
func (r *Registry) ByName(name string) (Document, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Documents returns all registered documents in configuration order.
func (r *Registry) Documents() []Document {
	out := make([]Document, len(r.docs))
	copy(out, r.docs)
	return out
}

// Len returns the number of registered documents.
func (r *Registry) Len() int { return len(r.docs) }
