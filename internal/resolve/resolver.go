// Package resolve turns import declarations into the items they pull in.
//
// An import names another file (or directory) and optionally filters
// or aliases what it brings. Resolution handles both path forms,
// detects self-imports, deduplicates diamond imports, and applies the
// collision policy: strict mode errors, lenient mode keeps the first
// import and warns.
//
// Path forms:
//
//	./path, ../path   relative to the importing file's directory
//	path              relative to the project source root (needs pxl.toml)
//
// A trailing slash imports every source file in a directory, each
// namespaced by its file stem.
package resolve

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/scbrown/pixelsrc/internal/logger"
	"github.com/scbrown/pixelsrc/internal/model"
	"github.com/scbrown/pixelsrc/internal/parser"
)

// Warning is a non-fatal problem found during resolution.
type Warning struct {
	Message string
}

// ResolvedImports holds everything the imports of one file brought in.
// Item names are already effective names: the original name, or
// "alias:name" when the import carried an alias.
type ResolvedImports struct {
	Palettes     []model.Palette
	Sprites      []model.Sprite
	Variants     []model.Variant
	Transforms   []model.Transform
	Compositions []model.Composition
	Animations   []model.Animation
	Warnings     []Warning
}

// fileItems is the per-kind split of one parsed target file.
type fileItems struct {
	palettes     []model.Palette
	sprites      []model.Sprite
	variants     []model.Variant
	transforms   []model.Transform
	compositions []model.Composition
	animations   []model.Animation
}

// Resolver resolves the import declarations of a single importing file.
// It is single-use: visited state accumulates across ResolveAll so
// diamond imports within one file are deduplicated.
type Resolver struct {
	// srcRoot is the project source root for root-relative imports.
	// Empty for standalone files outside any project.
	srcRoot string
	// importingFile is the canonical path of the file whose imports are
	// being resolved, for self-import detection.
	importingFile string
	// visited holds canonical paths of every target parsed so far.
	visited map[string]bool
	// imported tracks effective names per kind for collision detection.
	imported map[model.Kind]map[string]bool
	// localNames are names defined in the importing file itself.
	localNames map[string]bool
	strict     bool
	warnings   []Warning
	log        *slog.Logger
}

// New creates a resolver. srcRoot may be empty for standalone files;
// root-relative imports then fail with NoProjectContextError. In strict
// mode import collisions are errors instead of first-wins warnings.
func New(srcRoot string, strict bool) *Resolver {
	imported := make(map[model.Kind]map[string]bool)
	for _, k := range []model.Kind{
		model.KindPalette, model.KindSprite, model.KindVariant,
		model.KindTransform, model.KindComposition, model.KindAnimation,
	} {
		imported[k] = make(map[string]bool)
	}
	return &Resolver{
		srcRoot:  srcRoot,
		visited:  make(map[string]bool),
		imported: imported,
		strict:   strict,
		log:      logger.ForComponent("resolve"),
	}
}

// MarkVisited records path as the importing file so an import pointing
// back at it is reported as circular. Paths that cannot be
// canonicalized are ignored.
func (r *Resolver) MarkVisited(path string) {
	canonical, err := canonicalize(path)
	if err != nil {
		return
	}
	r.importingFile = canonical
	r.visited[canonical] = true
}

// ResolveAll resolves every import declaration of one file. baseDir is
// the importing file's directory; localNames are the names the file
// defines itself, which always win over imports.
func (r *Resolver) ResolveAll(imports []model.Import, baseDir string, localNames map[string]bool) (*ResolvedImports, error) {
	r.localNames = localNames
	if r.localNames == nil {
		r.localNames = map[string]bool{}
	}

	result := &ResolvedImports{}
	for _, imp := range imports {
		if err := r.resolveSingle(imp, baseDir, result); err != nil {
			return nil, err
		}
	}
	result.Warnings = append(result.Warnings, r.warnings...)
	r.warnings = nil
	return result, nil
}

func (r *Resolver) resolveSingle(imp model.Import, baseDir string, result *ResolvedImports) error {
	if imp.Alias != "" && r.localNames[imp.Alias] {
		return &AliasShadowsLocalError{Alias: imp.Alias, Name: imp.Alias}
	}
	if imp.IsDirectory() {
		return r.resolveDirectory(imp, baseDir, result)
	}
	return r.resolveFile(imp, baseDir, result)
}

func (r *Resolver) resolveFile(imp model.Import, baseDir string, result *ResolvedImports) error {
	filePath, err := r.resolveImportPath(imp.From, baseDir)
	if err != nil {
		return err
	}
	canonical, err := canonicalize(filePath)
	if err != nil {
		return &IOError{Path: filePath, Err: err}
	}

	if canonical == r.importingFile && r.importingFile != "" {
		return &CircularImportError{Cycle: imp.From}
	}
	if r.visited[canonical] {
		// Diamond import: a previous declaration already pulled this
		// file in, so this one is a no-op.
		return nil
	}

	r.visited[canonical] = true
	items, err := r.parseFileItems(canonical)
	if err != nil {
		return err
	}
	r.log.Debug("resolved import", "from", imp.From, "file", canonical)

	return r.addItems(imp, items, result)
}

func (r *Resolver) resolveDirectory(imp model.Import, baseDir string, result *ResolvedImports) error {
	dirPath, err := r.resolveDirPath(imp.From, baseDir)
	if err != nil {
		return err
	}
	info, err := os.Stat(dirPath)
	if err != nil || !info.IsDir() {
		return &FileNotFoundError{Path: imp.From}
	}

	files, err := listSourceFiles(dirPath)
	if err != nil {
		return &IOError{Path: dirPath, Err: err}
	}

	for _, filePath := range files {
		canonical, err := canonicalize(filePath)
		if err != nil {
			continue
		}
		if r.visited[canonical] {
			continue
		}
		r.visited[canonical] = true

		items, err := r.parseFileItems(canonical)
		if err != nil {
			return err
		}

		// Each file's items are namespaced by the file stem; selective
		// filters apply per file.
		perFile := imp
		perFile.Alias = fileStem(filePath)
		if err := r.addItems(perFile, items, result); err != nil {
			return err
		}
	}
	return nil
}

// resolveImportPath maps an import path to an existing file, trying
// the exact path first, then .pxl, then .jsonl.
func (r *Resolver) resolveImportPath(from, baseDir string) (string, error) {
	if strings.HasPrefix(from, "./") || strings.HasPrefix(from, "../") {
		return findWithExtensions(filepath.Join(baseDir, filepath.FromSlash(from)))
	}
	if r.srcRoot == "" {
		return "", &NoProjectContextError{From: from}
	}
	return findWithExtensions(filepath.Join(r.srcRoot, filepath.FromSlash(from)))
}

func (r *Resolver) resolveDirPath(from, baseDir string) (string, error) {
	trimmed := strings.TrimRight(from, "/")
	if strings.HasPrefix(trimmed, "./") || strings.HasPrefix(trimmed, "../") {
		return filepath.Join(baseDir, filepath.FromSlash(trimmed)), nil
	}
	if r.srcRoot == "" {
		return "", &NoProjectContextError{From: from}
	}
	return filepath.Join(r.srcRoot, filepath.FromSlash(trimmed)), nil
}

func findWithExtensions(path string) (string, error) {
	for _, candidate := range []string{path, path + ".pxl", path + ".jsonl"} {
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, nil
		}
	}
	return "", &FileNotFoundError{Path: path}
}

func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// listSourceFiles returns the direct .pxl and .jsonl children of dir,
// sorted by name.
func listSourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".pxl", ".jsonl":
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// parseFileItems parses one target file and splits its objects by
// kind. Imports inside the target are not followed; there are no
// transitive re-exports. Parse warnings are forwarded.
func (r *Resolver) parseFileItems(path string) (*fileItems, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	res := parser.ParseStream(f)
	for _, w := range res.Warnings {
		r.warnings = append(r.warnings, Warning{
			Message: fmt.Sprintf("%s: %s", path, w),
		})
	}

	items := &fileItems{}
	for _, obj := range res.Objects {
		switch v := obj.(type) {
		case model.Palette:
			items.palettes = append(items.palettes, v)
		case model.Sprite:
			items.sprites = append(items.sprites, v)
		case model.Variant:
			items.variants = append(items.variants, v)
		case model.Transform:
			items.transforms = append(items.transforms, v)
		case model.Composition:
			items.compositions = append(items.compositions, v)
		case model.Animation:
			items.animations = append(items.animations, v)
		}
	}
	return items, nil
}

// addItems applies filtering and the alias to one parsed file and
// merges its items into the result. Selective imports take only the
// named items and error on misses; otherwise everything comes in.
func (r *Resolver) addItems(imp model.Import, items *fileItems, result *ResolvedImports) error {
	if imp.IsSelective() {
		if err := addSelected(r, model.KindPalette, items.palettes, imp.Palettes, imp.Alias, imp.From, &result.Palettes); err != nil {
			return err
		}
		if err := addSelected(r, model.KindSprite, items.sprites, imp.Sprites, imp.Alias, imp.From, &result.Sprites); err != nil {
			return err
		}
		if err := addSelected(r, model.KindTransform, items.transforms, imp.Transforms, imp.Alias, imp.From, &result.Transforms); err != nil {
			return err
		}
		return addSelected(r, model.KindAnimation, items.animations, imp.Animations, imp.Alias, imp.From, &result.Animations)
	}

	if err := addAll(r, model.KindPalette, items.palettes, imp.Alias, &result.Palettes); err != nil {
		return err
	}
	if err := addAll(r, model.KindSprite, items.sprites, imp.Alias, &result.Sprites); err != nil {
		return err
	}
	if err := addAll(r, model.KindVariant, items.variants, imp.Alias, &result.Variants); err != nil {
		return err
	}
	if err := addAll(r, model.KindTransform, items.transforms, imp.Alias, &result.Transforms); err != nil {
		return err
	}
	if err := addAll(r, model.KindComposition, items.compositions, imp.Alias, &result.Compositions); err != nil {
		return err
	}
	return addAll(r, model.KindAnimation, items.animations, imp.Alias, &result.Animations)
}

func effectiveName(name, alias string) string {
	if alias == "" {
		return name
	}
	return alias + ":" + name
}

// addOne merges a single item under its effective name. Local names
// win silently; a repeat of an already imported name is an error in
// strict mode and a first-wins warning otherwise.
func addOne[T model.Item[T]](r *Resolver, kind model.Kind, item T, alias string, out *[]T) error {
	eff := effectiveName(item.ItemName(), alias)

	if r.localNames[eff] {
		return nil
	}
	if r.imported[kind][eff] {
		if r.strict {
			return &CollisionError{ItemType: string(kind), Name: eff}
		}
		r.warnings = append(r.warnings, Warning{
			Message: fmt.Sprintf("%s '%s' already imported; first import wins", kind, eff),
		})
		return nil
	}
	r.imported[kind][eff] = true
	*out = append(*out, item.WithName(eff))
	return nil
}

func addAll[T model.Item[T]](r *Resolver, kind model.Kind, items []T, alias string, out *[]T) error {
	for _, item := range items {
		if err := addOne(r, kind, item, alias, out); err != nil {
			return err
		}
	}
	return nil
}

func addSelected[T model.Item[T]](r *Resolver, kind model.Kind, items []T, names []string, alias, from string, out *[]T) error {
	for _, name := range names {
		idx := -1
		for i := range items {
			if items[i].ItemName() == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			return &ItemNotFoundError{ItemType: string(kind), Name: name, From: from}
		}
		if err := addOne(r, kind, items[idx], alias, out); err != nil {
			return err
		}
	}
	return nil
}
