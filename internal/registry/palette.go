// Package registry holds the per-kind item registries: palettes,
// sprites with variants, transforms, and compositions. Registries
// resolve references either strictly (missing names are errors) or
// leniently (missing names fall back and warn).
package registry

import (
	"fmt"
	"strings"

	"github.com/scbrown/pixelsrc/internal/model"
)

// MagentaFallback is the color substituted for unresolvable tokens
// during rendering.
const MagentaFallback = "#FF00FF"

// PaletteSource tells where a resolved palette came from.
type PaletteSource int

const (
	// SourceNamed is a palette found in the registry by name.
	SourceNamed PaletteSource = iota
	// SourceBuiltin is an @name built-in palette.
	SourceBuiltin
	// SourceInline is a token map defined directly on the sprite.
	SourceInline
	// SourceFallback is the empty palette used when lookup failed in
	// lenient mode.
	SourceFallback
)

// ResolvedPalette maps tokens to colors, ready for rendering.
type ResolvedPalette struct {
	Colors map[string]string
	Source PaletteSource
	// Name is set for SourceNamed and SourceBuiltin.
	Name string
}

// PaletteNotFoundError reports a named palette missing from the registry.
type PaletteNotFoundError struct {
	Name string
}

func (e *PaletteNotFoundError) Error() string {
	return fmt.Sprintf("palette '%s' not found", e.Name)
}

// BuiltinNotFoundError reports an unknown @name built-in reference.
type BuiltinNotFoundError struct {
	Name string
}

func (e *BuiltinNotFoundError) Error() string {
	return fmt.Sprintf("built-in palette '%s' not found", e.Name)
}

// PaletteWarning is a lenient-mode resolution problem.
type PaletteWarning struct {
	Message string
}

// PaletteRegistry stores named palettes. Registering a name twice
// replaces the earlier palette; callers that need first-wins or
// collision errors enforce that before registering.
type PaletteRegistry struct {
	palettes map[string]model.Palette
}

func NewPaletteRegistry() *PaletteRegistry {
	return &PaletteRegistry{palettes: make(map[string]model.Palette)}
}

func (r *PaletteRegistry) Register(p model.Palette) {
	r.palettes[p.Name] = p
}

func (r *PaletteRegistry) Get(name string) (model.Palette, bool) {
	p, ok := r.palettes[name]
	return p, ok
}

func (r *PaletteRegistry) Contains(name string) bool {
	_, ok := r.palettes[name]
	return ok
}

// ResolveStrict resolves a sprite's palette reference, erroring when a
// named or built-in palette is missing.
func (r *PaletteRegistry) ResolveStrict(sprite model.Sprite) (ResolvedPalette, error) {
	ref := sprite.Palette
	if ref.IsInline() {
		return ResolvedPalette{Colors: ref.Inline, Source: SourceInline}, nil
	}
	if builtinName, ok := strings.CutPrefix(ref.Name, "@"); ok {
		builtin, found := Builtin(builtinName)
		if !found {
			return ResolvedPalette{}, &BuiltinNotFoundError{Name: builtinName}
		}
		return ResolvedPalette{Colors: builtin.Colors, Source: SourceBuiltin, Name: builtinName}, nil
	}
	if p, ok := r.palettes[ref.Name]; ok {
		return ResolvedPalette{Colors: p.Colors, Source: SourceNamed, Name: ref.Name}, nil
	}
	return ResolvedPalette{}, &PaletteNotFoundError{Name: ref.Name}
}

// ResolveLenient always resolves. A missing palette yields an empty
// fallback (tokens render magenta later) plus a warning.
func (r *PaletteRegistry) ResolveLenient(sprite model.Sprite) (ResolvedPalette, *PaletteWarning) {
	resolved, err := r.ResolveStrict(sprite)
	if err == nil {
		return resolved, nil
	}
	return ResolvedPalette{
		Colors: map[string]string{},
		Source: SourceFallback,
	}, &PaletteWarning{Message: err.Error()}
}

// Resolve dispatches on mode: strict errors on missing palettes,
// lenient falls back with a warning.
func (r *PaletteRegistry) Resolve(sprite model.Sprite, strict bool) (ResolvedPalette, *PaletteWarning, error) {
	if strict {
		resolved, err := r.ResolveStrict(sprite)
		return resolved, nil, err
	}
	resolved, warning := r.ResolveLenient(sprite)
	return resolved, warning, nil
}
