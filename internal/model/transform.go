package model

// Transform is a named, reusable sequence of transform operations. The
// operation payloads are opaque to the module system; the renderer
// interprets them.
type Transform struct {
	Name    string           `json:"name"`
	Params  []string         `json:"params,omitempty"`
	Ops     []map[string]any `json:"ops,omitempty"`
	Compose []map[string]any `json:"compose,omitempty"`
}

func (Transform) Kind() Kind { return KindTransform }

func (t Transform) ItemName() string { return t.Name }

func (t Transform) WithName(name string) Transform {
	t.Name = name
	return t
}
