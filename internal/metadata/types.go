package metadata

// ItemType enumerates the closed set of documentable entity kinds.
type ItemType string

const (
	TypeNamespace   ItemType = "Namespace"
	TypeEnum        ItemType = "Enum"
	TypeField       ItemType = "Field"
	TypeMethod      ItemType = "Method"
	TypeClass       ItemType = "Class"
	TypeStruct      ItemType = "Struct"
	TypeConstructor ItemType = "Constructor"
	TypeProperty    ItemType = "Property"
	TypeDelegate    ItemType = "Delegate"
	TypeOperator    ItemType = "Operator"
	TypeInterface   ItemType = "Interface"
)

// IsMember reports whether the type is a member of a containing type
// (as opposed to a namespace or a type definition). Members render into
// their parent type's directory.
func (t ItemType) IsMember() bool {
	switch t {
	case TypeConstructor, TypeField, TypeMethod, TypeOperator, TypeProperty:
		return true
	}
	return false
}

// Valid reports whether t is one of the known entity kinds.
func (t ItemType) Valid() bool {
	switch t {
	case TypeNamespace, TypeEnum, TypeField, TypeMethod, TypeClass, TypeStruct,
		TypeConstructor, TypeProperty, TypeDelegate, TypeOperator, TypeInterface:
		return true
	}
	return false
}

// Parameter describes one parameter of a method-like item.
type Parameter struct {
	ID          string `yaml:"id"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// TypeParameter describes one generic type parameter.
type TypeParameter struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
}

// Return describes the return value of a method-like item.
type Return struct {
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// Syntax carries the declaration shape of an item.
type Syntax struct {
	Content        string          `yaml:"content"`
	Parameters     []Parameter     `yaml:"parameters"`
	TypeParameters []TypeParameter `yaml:"typeParameters"`
	Return         *Return         `yaml:"return"`
}

// Exception documents one exception an item may raise.
type Exception struct {
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// Attribute is an annotation attached to an item. Deprecation is modeled as
// an attribute whose type ends in "ObsoleteAttribute".
type Attribute struct {
	Type      string   `yaml:"type"`
	Arguments []string `yaml:"arguments"`
}

// Source locates the declaration in its origin repository.
type Source struct {
	Repo      string `yaml:"repo"`
	Branch    string `yaml:"branch"`
	Path      string `yaml:"path"`
	StartLine int    `yaml:"startLine"`
}

// Item is an internally documented entity with full structured metadata.
//
// ShortUID and CaseSuffix are derived by Store.Finalize and must not be set
// by loaders.
type Item struct {
	UID              string      `yaml:"uid"`
	Type             ItemType    `yaml:"type"`
	Name             string      `yaml:"name"`
	Namespace        string      `yaml:"namespace"`
	Parent           string      `yaml:"parent"`
	Children         []string    `yaml:"children"`
	InheritedMembers []string    `yaml:"inheritedMembers"`
	Overload         string      `yaml:"overload"`
	Summary          string      `yaml:"summary"`
	Remarks          string      `yaml:"remarks"`
	Example          string      `yaml:"example"`
	Syntax           *Syntax     `yaml:"syntax"`
	Exceptions       []Exception `yaml:"exceptions"`
	Attributes       []Attribute `yaml:"attributes"`
	Source           *Source     `yaml:"source"`
	DoNotDocument    bool        `yaml:"doNotDocument"`

	ShortUID   string `yaml:"-"`
	CaseSuffix string `yaml:"-"`
}

// Deprecated reports whether the item carries an obsolete-style attribute.
// The first attribute argument, when present, is the deprecation message.
func (it *Item) Deprecated() (string, bool) {
	for _, attr := range it.Attributes {
		if attr.Type == "System.ObsoleteAttribute" {
			if len(attr.Arguments) > 0 {
				return attr.Arguments[0], true
			}
			return "", true
		}
	}
	return "", false
}

// Reference is an externally observed entity with no managed documentation.
type Reference struct {
	UID  string `yaml:"uid"`
	Name string `yaml:"name"`
}
