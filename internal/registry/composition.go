package registry

import (
	"sort"

	"github.com/scbrown/pixelsrc/internal/model"
)

// CompositionRegistry stores named compositions.
type CompositionRegistry struct {
	compositions map[string]model.Composition
}

func NewCompositionRegistry() *CompositionRegistry {
	return &CompositionRegistry{compositions: make(map[string]model.Composition)}
}

func (r *CompositionRegistry) Register(c model.Composition) {
	r.compositions[c.Name] = c
}

func (r *CompositionRegistry) Get(name string) (model.Composition, bool) {
	c, ok := r.compositions[name]
	return c, ok
}

func (r *CompositionRegistry) Contains(name string) bool {
	_, ok := r.compositions[name]
	return ok
}

func (r *CompositionRegistry) Names() []string {
	names := make([]string, 0, len(r.compositions))
	for name := range r.compositions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
