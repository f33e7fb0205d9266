// Package project aggregates items from every source file of a project
// into one shared namespace.
//
// Each item is registered under a canonical name of the form
// "project/path/to/file:item" and, for local items, under its bare
// short name (first definition wins). Dependency items are canonical
// only, so cross-project short-name collisions cannot happen.
package project

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/scbrown/pixelsrc/internal/logger"
	"github.com/scbrown/pixelsrc/internal/model"
	"github.com/scbrown/pixelsrc/internal/parser"
	"github.com/scbrown/pixelsrc/internal/registry"
)

// Warning is a non-fatal problem found while loading the project.
type Warning struct {
	Message string
}

// Registry is the project-wide item registry. It wraps the per-kind
// registries and adds qualified name resolution across all files.
type Registry struct {
	projectName string
	srcRoot     string

	Palettes     *registry.PaletteRegistry
	Sprites      *registry.SpriteRegistry
	Transforms   *registry.TransformRegistry
	Compositions *registry.CompositionRegistry

	paletteIndex     *locationIndex
	spriteIndex      *locationIndex
	variantIndex     *locationIndex
	transformIndex   *locationIndex
	compositionIndex *locationIndex

	warnings    []Warning
	loadedFiles []string
	log         *slog.Logger
}

// New creates an empty registry for the named project rooted at srcRoot.
func New(projectName, srcRoot string) *Registry {
	return &Registry{
		projectName:      projectName,
		srcRoot:          srcRoot,
		Palettes:         registry.NewPaletteRegistry(),
		Sprites:          registry.NewSpriteRegistry(),
		Transforms:       registry.NewTransformRegistry(),
		Compositions:     registry.NewCompositionRegistry(),
		paletteIndex:     newLocationIndex("palette"),
		spriteIndex:      newLocationIndex("sprite"),
		variantIndex:     newLocationIndex("variant"),
		transformIndex:   newLocationIndex("transform"),
		compositionIndex: newLocationIndex("composition"),
		log:              logger.ForComponent("project"),
	}
}

// LoadAll loads every source file under the source root in sorted
// order. In strict mode short-name collisions are errors; in lenient
// mode the first definition wins and a warning is recorded.
func (r *Registry) LoadAll(strict bool) error {
	files, err := discoverSourceFiles(r.srcRoot)
	if err != nil {
		return &IOError{Path: r.srcRoot, Err: err}
	}
	for _, file := range files {
		if err := r.LoadFile(file, strict); err != nil {
			return err
		}
	}
	r.log.Debug("project loaded",
		"project", r.projectName, "files", len(r.loadedFiles), "items", r.TotalItems())
	return nil
}

// LoadFile parses one source file and registers all its items.
func (r *Registry) LoadFile(path string, strict bool) error {
	f, err := os.Open(path)
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	defer f.Close()

	res := parser.ParseStream(f)
	for _, w := range res.Warnings {
		r.warnings = append(r.warnings, Warning{Message: path + ": " + w.String()})
	}

	modulePath := r.fileToModulePath(path)

	for _, obj := range res.Objects {
		var primary bool
		var regErr error
		switch v := obj.(type) {
		case model.Palette:
			if primary, regErr = r.registerLocal(r.paletteIndex, v.Name, modulePath, path, strict); primary {
				r.Palettes.Register(v)
			}
		case model.Sprite:
			if primary, regErr = r.registerLocal(r.spriteIndex, v.Name, modulePath, path, strict); primary {
				r.Sprites.RegisterSprite(v)
			}
		case model.Variant:
			if primary, regErr = r.registerLocal(r.variantIndex, v.Name, modulePath, path, strict); primary {
				r.Sprites.RegisterVariant(v)
			}
		case model.Transform:
			if primary, regErr = r.registerLocal(r.transformIndex, v.Name, modulePath, path, strict); primary {
				r.Transforms.Register(v)
			}
		case model.Composition:
			if primary, regErr = r.registerLocal(r.compositionIndex, v.Name, modulePath, path, strict); primary {
				r.Compositions.Register(v)
			}
			// Animations, particles, state rules, and import
			// declarations are not indexed project-wide.
		}
		if regErr != nil {
			return regErr
		}
	}

	r.loadedFiles = append(r.loadedFiles, path)
	return nil
}

// registerLocal validates the item name, builds its canonical name
// under this project, and indexes it. It reports whether the item now
// owns its short name; on a lenient collision the earlier definition
// keeps it, so the new item is indexed under its canonical name only.
func (r *Registry) registerLocal(idx *locationIndex, name, modulePath, sourceFile string, strict bool) (primary bool, err error) {
	if err := validateName(name, sourceFile); err != nil {
		return false, err
	}
	loc := ItemLocation{
		CanonicalName: r.projectName + "/" + modulePath + ":" + name,
		ShortName:     name,
		FilePath:      modulePath,
		SourceFile:    sourceFile,
	}
	warning, err := idx.register(loc, strict)
	if err != nil {
		return false, err
	}
	if warning != "" {
		r.warnings = append(r.warnings, Warning{Message: warning})
		return false, nil
	}
	return true, nil
}

// fileToModulePath converts an absolute source path to a module path
// relative to the source root, without extension and with forward
// slashes: /p/src/pxl/characters/hero.pxl becomes "characters/hero".
func (r *Registry) fileToModulePath(path string) string {
	rel, err := filepath.Rel(r.srcRoot, path)
	if err != nil {
		rel = path
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.ToSlash(rel)
}

// ResolvePaletteName maps a palette reference to its registry key.
func (r *Registry) ResolvePaletteName(name string) (string, bool) {
	return r.paletteIndex.resolve(name, r.projectName)
}

// ResolveSpriteName maps a sprite reference to its registry key.
func (r *Registry) ResolveSpriteName(name string) (string, bool) {
	return r.spriteIndex.resolve(name, r.projectName)
}

// ResolveTransformName maps a transform reference to its registry key.
func (r *Registry) ResolveTransformName(name string) (string, bool) {
	return r.transformIndex.resolve(name, r.projectName)
}

// ResolveCompositionName maps a composition reference to its registry key.
func (r *Registry) ResolveCompositionName(name string) (string, bool) {
	return r.compositionIndex.resolve(name, r.projectName)
}

// PaletteLocation returns the location for a canonical palette name.
func (r *Registry) PaletteLocation(canonical string) (ItemLocation, bool) {
	return r.paletteIndex.location(canonical)
}

// SpriteLocation returns the location for a canonical sprite name.
func (r *Registry) SpriteLocation(canonical string) (ItemLocation, bool) {
	return r.spriteIndex.location(canonical)
}

// VariantLocation returns the location for a canonical variant name.
func (r *Registry) VariantLocation(canonical string) (ItemLocation, bool) {
	return r.variantIndex.location(canonical)
}

// TransformLocation returns the location for a canonical transform name.
func (r *Registry) TransformLocation(canonical string) (ItemLocation, bool) {
	return r.transformIndex.location(canonical)
}

// CompositionLocation returns the location for a canonical composition name.
func (r *Registry) CompositionLocation(canonical string) (ItemLocation, bool) {
	return r.compositionIndex.location(canonical)
}

// PaletteNames returns all canonical palette names, sorted.
func (r *Registry) PaletteNames() []string { return r.paletteIndex.names() }

// SpriteNames returns all canonical sprite names, sorted.
func (r *Registry) SpriteNames() []string { return r.spriteIndex.names() }

// TransformNames returns all canonical transform names, sorted.
func (r *Registry) TransformNames() []string { return r.transformIndex.names() }

// CompositionNames returns all canonical composition names, sorted.
func (r *Registry) CompositionNames() []string { return r.compositionIndex.names() }

// TotalItems counts registered items across all kinds.
func (r *Registry) TotalItems() int {
	return r.paletteIndex.len() +
		r.spriteIndex.len() +
		r.variantIndex.len() +
		r.transformIndex.len() +
		r.compositionIndex.len()
}

func (r *Registry) ProjectName() string { return r.projectName }

func (r *Registry) SrcRoot() string { return r.srcRoot }

func (r *Registry) Warnings() []Warning { return r.warnings }

func (r *Registry) LoadedFiles() []string { return r.loadedFiles }

// validateName rejects item names using characters that are structural
// in canonical names.
func validateName(name, file string) error {
	for _, ch := range []rune{':', '/'} {
		if strings.ContainsRune(name, ch) {
			return &InvalidNameError{Name: name, File: file, Char: ch}
		}
	}
	return nil
}
