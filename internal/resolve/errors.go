package resolve

import "fmt"

// CircularImportError reports a file importing itself.
type CircularImportError struct {
	Cycle string
}

func (e *CircularImportError) Error() string {
	return fmt.Sprintf("circular import detected: %s", e.Cycle)
}

// FileNotFoundError reports an import target that does not exist under
// any recognized extension.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("import file not found: '%s' (tried .pxl and .jsonl extensions)", e.Path)
}

// NoProjectContextError reports a root-relative import attempted
// without a pxl.toml project.
type NoProjectContextError struct {
	From string
}

func (e *NoProjectContextError) Error() string {
	return fmt.Sprintf("root-relative import '%s' requires pxl.toml project configuration", e.From)
}

// AliasShadowsLocalError reports an import alias colliding with a name
// defined in the importing file.
type AliasShadowsLocalError struct {
	Alias string
	Name  string
}

func (e *AliasShadowsLocalError) Error() string {
	return fmt.Sprintf("import alias '%s' shadows local name '%s'", e.Alias, e.Name)
}

// CollisionError reports two imports producing the same effective name
// in strict mode.
type CollisionError struct {
	ItemType string
	Name     string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("import collision in strict mode: %s '%s' already imported", e.ItemType, e.Name)
}

// ItemNotFoundError reports a selectively imported item missing from
// the target file.
type ItemNotFoundError struct {
	ItemType string
	Name     string
	From     string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("imported %s '%s' not found in '%s'", e.ItemType, e.Name, e.From)
}

// IOError wraps a filesystem failure while reading an import target.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading '%s': %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
