package rendering

import (
	"fmt"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// Registry maps template ids to renderers. Unknown ids resolve to the
// default renderer.
type Registry struct {
	styles    []Style
	renderers map[string]*Renderer
	defaultID string
}

// NewRegistry builds a registry over styles. defaultID must be one of them.
func NewRegistry(styles []Style, defaultID string) (*Registry, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	r := &Registry{renderers: make(map[string]*Renderer, len(styles)), defaultID: defaultID}
	for _, s := range styles {
		if _, dup := r.renderers[s.ID]; dup {
			return nil, &RenderError{Message: fmt.Sprintf("duplicate template id %q", s.ID)}
		}
		r.renderers[s.ID] = &Renderer{style: s, tmpl: tmpl}
		r.styles = append(r.styles, s)
	}
	if _, ok := r.renderers[defaultID]; !ok {
		return nil, &RenderError{Message: fmt.Sprintf("default template %q is not registered", defaultID)}
	}
	return r, nil
}

var (
	builtinOnce     sync.Once
	builtinRegistry *Registry
	builtinErr      error
)

// Builtin returns the registry of built-in styles with "modern" as default.
func Builtin() (*Registry, error) {
	builtinOnce.Do(func() {
		builtinRegistry, builtinErr = NewRegistry(builtinStyles, types.DefaultTemplateID)
	})
	return builtinRegistry, builtinErr
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.renderers[id]
	return ok
}

// ResolveID maps id to a registered id, falling back to the default.
func (r *Registry) ResolveID(id string) string {
	if r.Has(id) {
		return id
	}
	return r.defaultID
}

// Resolve returns the renderer for id, falling back to the default.
func (r *Registry) Resolve(id string) *Renderer {
	return r.renderers[r.ResolveID(id)]
}

// DefaultID returns the fallback template id.
func (r *Registry) DefaultID() string {
	return r.defaultID
}

// Styles lists the registered styles in registration order.
func (r *Registry) Styles() []Style {
	return append([]Style{}, r.styles...)
}
