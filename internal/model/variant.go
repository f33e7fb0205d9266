package model

// Variant reuses a base sprite's grid with palette overrides.
type Variant struct {
	Name    string            `json:"name"`
	Base    string            `json:"base"`
	Palette map[string]string `json:"palette"`
}

func (Variant) Kind() Kind { return KindVariant }

func (v Variant) ItemName() string { return v.Name }

func (v Variant) WithName(name string) Variant {
	v.Name = name
	return v
}
