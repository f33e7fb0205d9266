package registry

import (
	"sort"

	"github.com/scbrown/pixelsrc/internal/model"
)

// TransformRegistry stores named transform definitions.
type TransformRegistry struct {
	transforms map[string]model.Transform
}

func NewTransformRegistry() *TransformRegistry {
	return &TransformRegistry{transforms: make(map[string]model.Transform)}
}

func (r *TransformRegistry) Register(t model.Transform) {
	r.transforms[t.Name] = t
}

func (r *TransformRegistry) Get(name string) (model.Transform, bool) {
	t, ok := r.transforms[name]
	return t, ok
}

func (r *TransformRegistry) Contains(name string) bool {
	_, ok := r.transforms[name]
	return ok
}

func (r *TransformRegistry) Names() []string {
	names := make([]string, 0, len(r.transforms))
	for name := range r.transforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
