package model

import "encoding/json"

// Palette maps tokens like "{skin}" to color strings.
type Palette struct {
	Name   string            `json:"name"`
	Colors map[string]string `json:"colors"`
}

func (Palette) Kind() Kind { return KindPalette }

func (p Palette) ItemName() string { return p.Name }

func (p Palette) WithName(name string) Palette {
	p.Name = name
	return p
}

// PaletteRef is either a reference to a named palette or an inline
// token-to-color map. In source files it appears as a JSON string or a
// JSON object.
type PaletteRef struct {
	Name   string
	Inline map[string]string
}

func (r PaletteRef) IsInline() bool { return r.Inline != nil }

func (r *PaletteRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.Name)
	}
	return json.Unmarshal(data, &r.Inline)
}

func (r PaletteRef) MarshalJSON() ([]byte, error) {
	if r.Inline != nil {
		return json.Marshal(r.Inline)
	}
	return json.Marshal(r.Name)
}
