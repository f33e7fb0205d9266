package model

// Sprite is a token grid rendered against a palette.
type Sprite struct {
	Name    string     `json:"name"`
	Size    *[2]int    `json:"size,omitempty"`
	Palette PaletteRef `json:"palette"`
	Grid    []string   `json:"grid,omitempty"`
}

func (Sprite) Kind() Kind { return KindSprite }

func (s Sprite) ItemName() string { return s.Name }

func (s Sprite) WithName(name string) Sprite {
	s.Name = name
	return s
}
