package model

// Kind identifies one of the closed set of pixelsrc object types. The
// string value matches the "type" tag used in source files.
type Kind string

const (
	KindPalette     Kind = "palette"
	KindSprite      Kind = "sprite"
	KindVariant     Kind = "variant"
	KindTransform   Kind = "transform"
	KindComposition Kind = "composition"
	KindAnimation   Kind = "animation"
	KindParticle    Kind = "particle"
	KindStateRules  Kind = "state-rules"
	KindImport      Kind = "import"
)

// Object is the closed union of top-level pixelsrc objects.
type Object interface {
	Kind() Kind
}

// Item is implemented by the named object types that can cross file
// boundaries. WithName returns a copy with the name replaced; import
// resolution uses it to apply alias prefixes before emitting items.
type Item[T any] interface {
	ItemName() string
	WithName(name string) T
}
