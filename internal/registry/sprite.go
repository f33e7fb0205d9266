package registry

import (
	"fmt"
	"sort"

	"github.com/scbrown/pixelsrc/internal/model"
)

// SpriteNotFoundError reports a name that is neither a sprite nor a
// variant.
type SpriteNotFoundError struct {
	Name string
}

func (e *SpriteNotFoundError) Error() string {
	return fmt.Sprintf("sprite or variant '%s' not found", e.Name)
}

// BaseNotFoundError reports a variant whose base sprite is missing.
type BaseNotFoundError struct {
	Variant string
	Base    string
}

func (e *BaseNotFoundError) Error() string {
	return fmt.Sprintf("variant '%s' references unknown base sprite '%s'", e.Variant, e.Base)
}

// SpriteWarning is a lenient-mode resolution problem.
type SpriteWarning struct {
	Message string
}

// ResolvedSprite is a sprite ready for rendering: either a direct
// sprite, or a variant expanded onto its base's grid with the palettes
// merged.
type ResolvedSprite struct {
	Name     string
	Size     *[2]int
	Grid     []string
	Palette  map[string]string
	Warnings []SpriteWarning
}

// SpriteRegistry stores sprites and variants under one shared
// namespace and expands variants on resolution.
type SpriteRegistry struct {
	sprites  map[string]model.Sprite
	variants map[string]model.Variant
}

func NewSpriteRegistry() *SpriteRegistry {
	return &SpriteRegistry{
		sprites:  make(map[string]model.Sprite),
		variants: make(map[string]model.Variant),
	}
}

func (r *SpriteRegistry) RegisterSprite(s model.Sprite) {
	r.sprites[s.Name] = s
}

func (r *SpriteRegistry) RegisterVariant(v model.Variant) {
	r.variants[v.Name] = v
}

func (r *SpriteRegistry) GetSprite(name string) (model.Sprite, bool) {
	s, ok := r.sprites[name]
	return s, ok
}

func (r *SpriteRegistry) GetVariant(name string) (model.Variant, bool) {
	v, ok := r.variants[name]
	return v, ok
}

// Contains reports whether name is a sprite or a variant.
func (r *SpriteRegistry) Contains(name string) bool {
	if _, ok := r.sprites[name]; ok {
		return true
	}
	_, ok := r.variants[name]
	return ok
}

// Names returns all sprite and variant names, sorted.
func (r *SpriteRegistry) Names() []string {
	names := make([]string, 0, len(r.sprites)+len(r.variants))
	for name := range r.sprites {
		names = append(names, name)
	}
	for name := range r.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve expands name into a renderable sprite. Variants inherit the
// base sprite's size and grid, with the variant's palette overrides
// applied on top of the base palette. In lenient mode missing names
// produce an empty result with a warning instead of an error.
func (r *SpriteRegistry) Resolve(name string, palettes *PaletteRegistry, strict bool) (ResolvedSprite, error) {
	if sprite, ok := r.sprites[name]; ok {
		return r.resolveSprite(sprite, palettes, strict)
	}
	if variant, ok := r.variants[name]; ok {
		return r.resolveVariant(variant, palettes, strict)
	}
	if strict {
		return ResolvedSprite{}, &SpriteNotFoundError{Name: name}
	}
	return ResolvedSprite{
		Name:     name,
		Palette:  map[string]string{},
		Warnings: []SpriteWarning{{Message: (&SpriteNotFoundError{Name: name}).Error()}},
	}, nil
}

func (r *SpriteRegistry) resolveSprite(sprite model.Sprite, palettes *PaletteRegistry, strict bool) (ResolvedSprite, error) {
	resolved, warning, err := palettes.Resolve(sprite, strict)
	if err != nil {
		return ResolvedSprite{}, err
	}

	result := ResolvedSprite{
		Name:    sprite.Name,
		Size:    sprite.Size,
		Grid:    sprite.Grid,
		Palette: resolved.Colors,
	}
	if warning != nil {
		result.Warnings = append(result.Warnings, SpriteWarning{Message: warning.Message})
	}
	return result, nil
}

func (r *SpriteRegistry) resolveVariant(variant model.Variant, palettes *PaletteRegistry, strict bool) (ResolvedSprite, error) {
	base, ok := r.sprites[variant.Base]
	if !ok {
		err := &BaseNotFoundError{Variant: variant.Name, Base: variant.Base}
		if strict {
			return ResolvedSprite{}, err
		}
		return ResolvedSprite{
			Name:     variant.Name,
			Palette:  map[string]string{},
			Warnings: []SpriteWarning{{Message: err.Error()}},
		}, nil
	}

	resolved, warning, err := palettes.Resolve(base, strict)
	if err != nil {
		return ResolvedSprite{}, err
	}

	merged := make(map[string]string, len(resolved.Colors)+len(variant.Palette))
	for token, color := range resolved.Colors {
		merged[token] = color
	}
	for token, color := range variant.Palette {
		merged[token] = color
	}

	result := ResolvedSprite{
		Name:    variant.Name,
		Size:    base.Size,
		Grid:    base.Grid,
		Palette: merged,
	}
	if warning != nil {
		result.Warnings = append(result.Warnings, SpriteWarning{Message: warning.Message})
	}
	return result, nil
}
