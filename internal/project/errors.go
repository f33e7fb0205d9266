package project

import "fmt"

// IOError wraps a filesystem failure while reading a source file.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading '%s': %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// InvalidNameError reports an item name using a reserved character.
// Names cannot contain ':' or '/' because both are structural in
// canonical names.
type InvalidNameError struct {
	Name string
	File string
	Char rune
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("item name '%s' in '%s' contains reserved character '%c' (names cannot contain ':' or '/')",
		e.Name, e.File, e.Char)
}

// NameCollisionError reports two files defining the same short name in
// strict mode.
type NameCollisionError struct {
	ItemType string
	Name     string
	Existing string
	New      string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("name collision: %s '%s' defined in both '%s' and '%s'",
		e.ItemType, e.Name, e.Existing, e.New)
}

// DependencyNotInstalledError reports a declared dependency missing
// from .pxl/deps/.
type DependencyNotInstalledError struct {
	Name string
}

func (e *DependencyNotInstalledError) Error() string {
	return fmt.Sprintf("dependency '%s' is declared in pxl.toml but not installed; run `pxl install` to fetch dependencies", e.Name)
}

// DependencyNoPxlTomlError reports an installed dependency without a
// pxl.toml manifest.
type DependencyNoPxlTomlError struct {
	Name string
	Path string
}

func (e *DependencyNoPxlTomlError) Error() string {
	return fmt.Sprintf("dependency '%s' at '%s' has no pxl.toml", e.Name, e.Path)
}

// DependencyConfigError reports an unreadable or invalid dependency
// manifest.
type DependencyConfigError struct {
	Name string
	Err  error
}

func (e *DependencyConfigError) Error() string {
	return fmt.Sprintf("dependency '%s' config error: %v", e.Name, e.Err)
}

func (e *DependencyConfigError) Unwrap() error { return e.Err }
