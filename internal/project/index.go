package project

import (
	"fmt"
	"sort"
	"strings"
)

// ItemLocation records where one registered item came from.
type ItemLocation struct {
	// CanonicalName is "project/path/to/file:item" (or "dep/...:item"
	// for dependency items).
	CanonicalName string
	// ShortName is the bare item name without path qualification.
	ShortName string
	// FilePath is the module path component, e.g. "characters/hero/base".
	FilePath string
	// SourceFile is the absolute path of the defining file.
	SourceFile string
}

// locationIndex is the per-kind name index: canonical name to location
// plus a first-wins short-name map for local items.
type locationIndex struct {
	itemType   string
	locations  map[string]ItemLocation
	shortNames map[string]string
}

func newLocationIndex(itemType string) *locationIndex {
	return &locationIndex{
		itemType:   itemType,
		locations:  make(map[string]ItemLocation),
		shortNames: make(map[string]string),
	}
}

// register indexes a local item under both its canonical and short
// names. On a short-name collision the first definition keeps the
// short name; strict mode turns the collision into an error, lenient
// mode returns a warning message.
func (idx *locationIndex) register(loc ItemLocation, strict bool) (warning string, err error) {
	idx.locations[loc.CanonicalName] = loc

	if existingCanonical, taken := idx.shortNames[loc.ShortName]; taken {
		existing := idx.locations[existingCanonical]
		if strict {
			return "", &NameCollisionError{
				ItemType: idx.itemType,
				Name:     loc.ShortName,
				Existing: existing.SourceFile,
				New:      loc.SourceFile,
			}
		}
		return fmt.Sprintf("%s '%s' defined in both '%s' and '%s'; first definition wins",
			idx.itemType, loc.ShortName, existing.SourceFile, loc.SourceFile), nil
	}

	idx.shortNames[loc.ShortName] = loc.CanonicalName
	return "", nil
}

// registerCanonicalOnly indexes a dependency item. No short name is
// recorded, so dependency items never collide with local ones and are
// only reachable through their dep-qualified canonical name.
func (idx *locationIndex) registerCanonicalOnly(loc ItemLocation) {
	idx.locations[loc.CanonicalName] = loc
}

// resolve maps a reference to the registry key (the short name).
//
// Resolution order:
//  1. exact canonical name
//  2. file-qualified name without the project prefix ("path/file:item")
//  3. bare short name
func (idx *locationIndex) resolve(name, projectName string) (string, bool) {
	if loc, ok := idx.locations[name]; ok {
		return loc.ShortName, true
	}
	if strings.Contains(name, ":") {
		if loc, ok := idx.locations[projectName+"/"+name]; ok {
			return loc.ShortName, true
		}
	}
	if canonical, ok := idx.shortNames[name]; ok {
		if loc, ok := idx.locations[canonical]; ok {
			return loc.ShortName, true
		}
	}
	return "", false
}

func (idx *locationIndex) location(canonical string) (ItemLocation, bool) {
	loc, ok := idx.locations[canonical]
	return loc, ok
}

func (idx *locationIndex) names() []string {
	names := make([]string, 0, len(idx.locations))
	for name := range idx.locations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (idx *locationIndex) len() int { return len(idx.locations) }
