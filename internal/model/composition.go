package model

// CompositionLayer is one layer of a composition: either a fill token or
// a placement map of sprite keys.
type CompositionLayer struct {
	Name    string   `json:"name,omitempty"`
	Fill    string   `json:"fill,omitempty"`
	Map     []string `json:"map,omitempty"`
	Blend   string   `json:"blend,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
}

// Composition arranges sprites on a grid of cells.
type Composition struct {
	Name     string             `json:"name"`
	Base     string             `json:"base,omitempty"`
	Size     *[2]int            `json:"size,omitempty"`
	CellSize *[2]int            `json:"cell_size,omitempty"`
	Sprites  map[string]string  `json:"sprites,omitempty"`
	Layers   []CompositionLayer `json:"layers,omitempty"`
}

func (Composition) Kind() Kind { return KindComposition }

func (c Composition) ItemName() string { return c.Name }

func (c Composition) WithName(name string) Composition {
	c.Name = name
	return c
}
