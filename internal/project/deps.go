package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/scbrown/pixelsrc/internal/config"
	"github.com/scbrown/pixelsrc/internal/model"
	"github.com/scbrown/pixelsrc/internal/parser"
)

// LoadDependencies loads every installed dependency from
// .pxl/deps/<name>/ in sorted name order. Dependency items register
// with "depname/path:item" canonical names and no short names, keeping
// their namespace isolated from local items.
func (r *Registry) LoadDependencies(deps map[string]config.Dependency, projectRoot string, strict bool) error {
	if len(deps) == 0 {
		return nil
	}

	depsDir := filepath.Join(projectRoot, ".pxl", "deps")

	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, depName := range names {
		if info, err := os.Stat(filepath.Join(r.srcRoot, depName)); err == nil && info.IsDir() {
			r.warnings = append(r.warnings, Warning{
				Message: fmt.Sprintf(
					"local directory '%s' shadows dependency '%s'; use the dependency-qualified path (e.g. '%s/path:item') to reference external items",
					depName, depName, depName),
			})
		}

		depRoot := filepath.Join(depsDir, depName)
		if _, err := os.Stat(depRoot); err != nil {
			return &DependencyNotInstalledError{Name: depName}
		}
		if err := r.loadDependency(depName, depRoot); err != nil {
			return err
		}
	}
	return nil
}

// depManifest is the slice of a dependency's pxl.toml the loader needs.
type depManifest struct {
	Project struct {
		Src string `toml:"src"`
	} `toml:"project"`
}

func (r *Registry) loadDependency(depName, depRoot string) error {
	manifestPath := filepath.Join(depRoot, config.FileName)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &DependencyNoPxlTomlError{Name: depName, Path: depRoot}
		}
		return &DependencyConfigError{Name: depName, Err: err}
	}

	var manifest depManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return &DependencyConfigError{Name: depName, Err: err}
	}
	src := manifest.Project.Src
	if src == "" {
		src = config.DefaultSrc
	}

	depSrcRoot := filepath.Join(depRoot, filepath.FromSlash(src))
	if _, err := os.Stat(depSrcRoot); err != nil {
		// No source tree means nothing to load.
		return nil
	}

	files, err := discoverSourceFiles(depSrcRoot)
	if err != nil {
		return &IOError{Path: depSrcRoot, Err: err}
	}
	for _, file := range files {
		if err := r.loadDependencyFile(depName, depSrcRoot, file); err != nil {
			return err
		}
	}
	r.log.Debug("dependency loaded", "dep", depName, "files", len(files))
	return nil
}

func (r *Registry) loadDependencyFile(depName, depSrcRoot, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &IOError{Path: path, Err: err}
	}
	defer f.Close()

	res := parser.ParseStream(f)
	for _, w := range res.Warnings {
		r.warnings = append(r.warnings, Warning{Message: path + ": " + w.String()})
	}

	rel, err := filepath.Rel(depSrcRoot, path)
	if err != nil {
		rel = path
	}
	modulePath := filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel)))

	// Sub-registry content never overwrites an existing entry: local
	// items load before dependencies, so a shadowed dependency item
	// stays reachable through its canonical location only.
	for _, obj := range res.Objects {
		switch v := obj.(type) {
		case model.Palette:
			if err := r.registerDep(r.paletteIndex, depName, v.Name, modulePath, path); err != nil {
				return err
			}
			if !r.Palettes.Contains(v.Name) {
				r.Palettes.Register(v)
			}
		case model.Sprite:
			if err := r.registerDep(r.spriteIndex, depName, v.Name, modulePath, path); err != nil {
				return err
			}
			if _, ok := r.Sprites.GetSprite(v.Name); !ok {
				r.Sprites.RegisterSprite(v)
			}
		case model.Variant:
			if err := r.registerDep(r.variantIndex, depName, v.Name, modulePath, path); err != nil {
				return err
			}
			if _, ok := r.Sprites.GetVariant(v.Name); !ok {
				r.Sprites.RegisterVariant(v)
			}
		case model.Transform:
			if err := r.registerDep(r.transformIndex, depName, v.Name, modulePath, path); err != nil {
				return err
			}
			if !r.Transforms.Contains(v.Name) {
				r.Transforms.Register(v)
			}
		case model.Composition:
			if err := r.registerDep(r.compositionIndex, depName, v.Name, modulePath, path); err != nil {
				return err
			}
			if !r.Compositions.Contains(v.Name) {
				r.Compositions.Register(v)
			}
		}
	}

	r.loadedFiles = append(r.loadedFiles, path)
	return nil
}

func (r *Registry) registerDep(idx *locationIndex, depName, name, modulePath, sourceFile string) error {
	if err := validateName(name, sourceFile); err != nil {
		return err
	}
	idx.registerCanonicalOnly(ItemLocation{
		CanonicalName: depName + "/" + modulePath + ":" + name,
		ShortName:     name,
		FilePath:      modulePath,
		SourceFile:    sourceFile,
	})
	return nil
}
