package model

import "strings"

// Import pulls named items from another file or directory.
//
//	{"type": "import", "from": "../shared/colors", "as": "shared"}
//
// The from path is either relative (./ or ../ prefix, resolved against
// the importing file's directory) or root-relative (resolved against the
// project source root). A trailing slash makes it a directory import.
type Import struct {
	From  string `json:"from"`
	Alias string `json:"as,omitempty"`

	// Selective filters. Variants and compositions intentionally have
	// no filter field; they only travel with wildcard imports.
	Sprites    []string `json:"sprites,omitempty"`
	Palettes   []string `json:"palettes,omitempty"`
	Transforms []string `json:"transforms,omitempty"`
	Animations []string `json:"animations,omitempty"`
}

func (Import) Kind() Kind { return KindImport }

// IsDirectory reports whether this imports a whole directory (trailing /).
func (i Import) IsDirectory() bool {
	return strings.HasSuffix(i.From, "/")
}

// IsRelative reports whether the path resolves against the importing
// file's directory rather than the project source root.
func (i Import) IsRelative() bool {
	return strings.HasPrefix(i.From, "./") || strings.HasPrefix(i.From, "../")
}

// IsSelective reports whether any per-kind filter list is present.
func (i Import) IsSelective() bool {
	return i.Sprites != nil || i.Palettes != nil || i.Transforms != nil || i.Animations != nil
}
