package resolve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scbrown/pixelsrc/internal/model"
)

func createFile(t *testing.T, dir, relPath, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func srcRootDir(t *testing.T) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "src", "pxl")
	require.NoError(t, os.MkdirAll(src, 0o755))
	return src
}

func spriteNames(sprites []model.Sprite) []string {
	names := make([]string, len(sprites))
	for i, s := range sprites {
		names[i] = s.Name
	}
	return names
}

func TestBasicUnfilteredImport(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "shared/colors.pxl",
		`{"type": "palette", "name": "gameboy", "colors": {"{bg}": "#0F380F"}}
{"type": "sprite", "name": "dot", "size": [1, 1], "palette": "gameboy"}`)

	r := New(src, false)
	result, err := r.ResolveAll([]model.Import{{From: "shared/colors"}}, src, nil)
	require.NoError(t, err)

	require.Len(t, result.Palettes, 1)
	assert.Equal(t, "gameboy", result.Palettes[0].Name)
	require.Len(t, result.Sprites, 1)
	assert.Equal(t, "dot", result.Sprites[0].Name)
}

func TestSelectivePaletteImport(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "palettes.pxl",
		`{"type": "palette", "name": "gameboy", "colors": {"{bg}": "#0F380F"}}
{"type": "palette", "name": "nes", "colors": {"{bg}": "#000000"}}
{"type": "sprite", "name": "icon", "size": [1, 1], "palette": "gameboy"}`)

	r := New(src, false)
	result, err := r.ResolveAll([]model.Import{
		{From: "palettes", Palettes: []string{"gameboy"}},
	}, src, nil)
	require.NoError(t, err)

	require.Len(t, result.Palettes, 1)
	assert.Equal(t, "gameboy", result.Palettes[0].Name)
	assert.Empty(t, result.Sprites, "selective import must not pull in other kinds")
}

func TestSelectiveSpriteImport(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "chars.pxl",
		`{"type": "sprite", "name": "idle", "size": [8, 8], "palette": {"r": "#F00"}}
{"type": "sprite", "name": "walk", "size": [8, 8], "palette": {"r": "#F00"}}
{"type": "sprite", "name": "run", "size": [8, 8], "palette": {"r": "#F00"}}`)

	r := New(src, false)
	result, err := r.ResolveAll([]model.Import{
		{From: "chars", Sprites: []string{"idle", "walk"}},
	}, src, nil)
	require.NoError(t, err)

	names := spriteNames(result.Sprites)
	assert.ElementsMatch(t, []string{"idle", "walk"}, names)
}

func TestAliasedImport(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "characters/hero/base.pxl",
		`{"type": "sprite", "name": "idle", "size": [8, 8], "palette": {"r": "#F00"}}
{"type": "palette", "name": "skin", "colors": {"{tone}": "#FFCC99"}}`)

	r := New(src, false)
	result, err := r.ResolveAll([]model.Import{
		{From: "characters/hero/base", Alias: "hero"},
	}, src, nil)
	require.NoError(t, err)

	require.Len(t, result.Sprites, 1)
	assert.Equal(t, "hero:idle", result.Sprites[0].Name)
	require.Len(t, result.Palettes, 1)
	assert.Equal(t, "hero:skin", result.Palettes[0].Name)
}

func TestRelativeImportDotSlash(t *testing.T) {
	base := t.TempDir()
	createFile(t, base, "sprites/palettes/brand.pxl",
		`{"type": "palette", "name": "brand", "colors": {"{accent}": "#FF6600"}}`)

	// Relative imports need no project context.
	r := New("", false)
	result, err := r.ResolveAll([]model.Import{
		{From: "./palettes/brand"},
	}, filepath.Join(base, "sprites"), nil)
	require.NoError(t, err)

	require.Len(t, result.Palettes, 1)
	assert.Equal(t, "brand", result.Palettes[0].Name)
}

func TestRelativeImportDotDotSlash(t *testing.T) {
	base := t.TempDir()
	createFile(t, base, "shared/colors.pxl",
		`{"type": "palette", "name": "shared_pal", "colors": {"{x}": "#FF0000"}}`)
	baseDir := filepath.Join(base, "sprites")
	require.NoError(t, os.MkdirAll(baseDir, 0o755))

	r := New("", false)
	result, err := r.ResolveAll([]model.Import{{From: "../shared/colors"}}, baseDir, nil)
	require.NoError(t, err)

	require.Len(t, result.Palettes, 1)
	assert.Equal(t, "shared_pal", result.Palettes[0].Name)
}

func TestRootRelativeImportRequiresProject(t *testing.T) {
	r := New("", false)
	_, err := r.ResolveAll([]model.Import{{From: "palettes/shared"}}, t.TempDir(), nil)

	var npc *NoProjectContextError
	require.ErrorAs(t, err, &npc)
	assert.Equal(t, "palettes/shared", npc.From)
}

func TestCircularImportSelf(t *testing.T) {
	src := srcRootDir(t)
	filePath := createFile(t, src, "self_ref.pxl",
		`{"type": "palette", "name": "pal", "colors": {"{x}": "#F00"}}`)

	r := New(src, false)
	r.MarkVisited(filePath)

	_, err := r.ResolveAll([]model.Import{{From: "self_ref"}}, src, nil)

	var circ *CircularImportError
	require.ErrorAs(t, err, &circ)
	assert.Contains(t, circ.Cycle, "self_ref")
}

func TestDiamondImportNoDuplication(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "shared.pxl",
		`{"type": "palette", "name": "shared", "colors": {"{x}": "#F00"}}`)

	r := New(src, false)
	result, err := r.ResolveAll([]model.Import{
		{From: "shared"},
		{From: "shared"},
	}, src, nil)
	require.NoError(t, err)

	require.Len(t, result.Palettes, 1)
	assert.Equal(t, "shared", result.Palettes[0].Name)
	assert.Empty(t, result.Warnings)
}

func TestCollisionLenientFirstWins(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "a.pxl",
		`{"type": "palette", "name": "shared", "colors": {"{x}": "#FF0000"}}`)
	createFile(t, src, "b.pxl",
		`{"type": "palette", "name": "shared", "colors": {"{x}": "#00FF00"}}`)

	r := New(src, false)
	result, err := r.ResolveAll([]model.Import{
		{From: "a"},
		{From: "b"},
	}, src, nil)
	require.NoError(t, err)

	require.Len(t, result.Palettes, 1)
	assert.Equal(t, "#FF0000", result.Palettes[0].Colors["{x}"])
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "already imported")
}

func TestCollisionStrictErrors(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "a.pxl",
		`{"type": "palette", "name": "shared", "colors": {"{x}": "#FF0000"}}`)
	createFile(t, src, "b.pxl",
		`{"type": "palette", "name": "shared", "colors": {"{x}": "#00FF00"}}`)

	r := New(src, true)
	_, err := r.ResolveAll([]model.Import{
		{From: "a"},
		{From: "b"},
	}, src, nil)

	var coll *CollisionError
	require.ErrorAs(t, err, &coll)
	assert.Equal(t, "palette", coll.ItemType)
	assert.Equal(t, "shared", coll.Name)
}

func TestAliasShadowsLocalError(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "other.pxl",
		`{"type": "sprite", "name": "idle", "size": [1, 1], "palette": {"x": "#F00"}}`)

	r := New(src, false)
	_, err := r.ResolveAll([]model.Import{
		{From: "other", Alias: "hero"},
	}, src, map[string]bool{"hero": true})

	var shadow *AliasShadowsLocalError
	require.ErrorAs(t, err, &shadow)
	assert.Equal(t, "hero", shadow.Alias)
}

func TestLocalNameWinsOverImport(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "external.pxl",
		`{"type": "palette", "name": "colors", "colors": {"{x}": "#00FF00"}}`)

	r := New(src, false)
	result, err := r.ResolveAll([]model.Import{
		{From: "external"},
	}, src, map[string]bool{"colors": true})
	require.NoError(t, err)

	assert.Empty(t, result.Palettes)
	assert.Empty(t, result.Warnings, "local shadowing is silent")
}

func TestSelectiveMissingItemError(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "file.pxl",
		`{"type": "palette", "name": "exists", "colors": {"{x}": "#F00"}}`)

	r := New(src, false)
	_, err := r.ResolveAll([]model.Import{
		{From: "file", Palettes: []string{"nonexistent"}},
	}, src, nil)

	var notFound *ItemNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "palette", notFound.ItemType)
	assert.Equal(t, "nonexistent", notFound.Name)
	assert.Equal(t, "file", notFound.From)
}

func TestFileNotFoundError(t *testing.T) {
	src := srcRootDir(t)

	r := New(src, false)
	_, err := r.ResolveAll([]model.Import{{From: "nonexistent/file"}}, src, nil)

	var nf *FileNotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestExtensionAutoDetectPxl(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "colors.pxl",
		`{"type": "palette", "name": "auto_pxl", "colors": {"{x}": "#F00"}}`)

	r := New(src, false)
	result, err := r.ResolveAll([]model.Import{{From: "colors"}}, src, nil)
	require.NoError(t, err)

	require.Len(t, result.Palettes, 1)
	assert.Equal(t, "auto_pxl", result.Palettes[0].Name)
}

func TestExtensionAutoDetectJsonl(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "colors.jsonl",
		`{"type": "palette", "name": "auto_jsonl", "colors": {"{x}": "#0F0"}}`)

	r := New(src, false)
	result, err := r.ResolveAll([]model.Import{{From: "colors"}}, src, nil)
	require.NoError(t, err)

	require.Len(t, result.Palettes, 1)
	assert.Equal(t, "auto_jsonl", result.Palettes[0].Name)
}

func TestDirectoryImport(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "characters/hero/base.pxl",
		`{"type": "sprite", "name": "idle", "size": [8, 8], "palette": {"r": "#F00"}}`)
	createFile(t, src, "characters/hero/attack.pxl",
		`{"type": "sprite", "name": "slash", "size": [8, 8], "palette": {"r": "#F00"}}`)

	r := New(src, false)
	result, err := r.ResolveAll([]model.Import{{From: "characters/hero/"}}, src, nil)
	require.NoError(t, err)

	// Items are namespaced by file stem.
	names := spriteNames(result.Sprites)
	assert.ElementsMatch(t, []string{"base:idle", "attack:slash"}, names)
}

func TestDirectoryImportNotFound(t *testing.T) {
	src := srcRootDir(t)

	r := New(src, false)
	_, err := r.ResolveAll([]model.Import{{From: "missing/"}}, src, nil)

	var nf *FileNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing/", nf.Path)
}

func TestSelectiveWithAlias(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "palettes/retro.pxl",
		`{"type": "palette", "name": "gameboy", "colors": {"{bg}": "#0F380F"}}
{"type": "palette", "name": "nes", "colors": {"{bg}": "#000000"}}`)

	r := New(src, false)
	result, err := r.ResolveAll([]model.Import{
		{From: "palettes/retro", Alias: "retro", Palettes: []string{"gameboy"}},
	}, src, nil)
	require.NoError(t, err)

	require.Len(t, result.Palettes, 1)
	assert.Equal(t, "retro:gameboy", result.Palettes[0].Name)
}

func TestTransformImport(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "transforms/motion.pxl",
		`{"type": "transform", "name": "bounce", "ops": [{"op": "translate", "y": -4}]}`)

	r := New(src, false)
	result, err := r.ResolveAll([]model.Import{
		{From: "transforms/motion", Transforms: []string{"bounce"}},
	}, src, nil)
	require.NoError(t, err)

	require.Len(t, result.Transforms, 1)
	assert.Equal(t, "bounce", result.Transforms[0].Name)
}

func TestMultipleImports(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "palettes/dark.pxl",
		`{"type": "palette", "name": "dark", "colors": {"{bg}": "#111"}}`)
	createFile(t, src, "palettes/light.pxl",
		`{"type": "palette", "name": "light", "colors": {"{bg}": "#EEE"}}`)
	createFile(t, src, "sprites/hero.pxl",
		`{"type": "sprite", "name": "hero", "size": [8, 8], "palette": "dark"}`)

	r := New(src, false)
	result, err := r.ResolveAll([]model.Import{
		{From: "palettes/dark"},
		{From: "palettes/light"},
		{From: "sprites/hero", Alias: "hero"},
	}, src, nil)
	require.NoError(t, err)

	assert.Len(t, result.Palettes, 2)
	require.Len(t, result.Sprites, 1)
	assert.Equal(t, "hero:hero", result.Sprites[0].Name)
}

func TestVariantsTravelWithWildcardImport(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "hero.pxl",
		`{"type": "sprite", "name": "idle", "size": [1, 1], "palette": {"{x}": "#F00"}, "grid": ["{x}"]}
{"type": "variant", "name": "idle_red", "base": "idle", "palette": {"{x}": "#AA0000"}}`)

	r := New(src, false)
	result, err := r.ResolveAll([]model.Import{{From: "hero", Alias: "h"}}, src, nil)
	require.NoError(t, err)

	require.Len(t, result.Variants, 1)
	assert.Equal(t, "h:idle_red", result.Variants[0].Name)

	// A selective import of the same file leaves variants behind; they
	// have no filter field of their own.
	r2 := New(src, false)
	result2, err := r2.ResolveAll([]model.Import{
		{From: "hero", Sprites: []string{"idle"}},
	}, src, nil)
	require.NoError(t, err)
	assert.Empty(t, result2.Variants)
}

func TestImportsInTargetNotFollowed(t *testing.T) {
	src := srcRootDir(t)
	createFile(t, src, "leaf.pxl",
		`{"type": "palette", "name": "leaf", "colors": {"{x}": "#0F0"}}`)
	createFile(t, src, "middle.pxl",
		`{"type": "import", "from": "leaf"}
{"type": "palette", "name": "middle", "colors": {"{x}": "#00F"}}`)

	r := New(src, false)
	result, err := r.ResolveAll([]model.Import{{From: "middle"}}, src, nil)
	require.NoError(t, err)

	// No transitive re-exports: only middle's own items come in.
	require.Len(t, result.Palettes, 1)
	assert.Equal(t, "middle", result.Palettes[0].Name)
}
