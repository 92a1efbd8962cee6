package literate

import "strings"

// MaxLevel is the deepest subject header, "#####".
const MaxLevel = 5

type (
	// Paragraph is one block of elaboration prose.
	Paragraph string
	// OneLiner is the short description following a header.
	OneLiner string
)

// Model is the root of a parsed document. It is the level 1 subject.
type Model struct {
	Subject `yaml:",inline"`
}

// Subject groups classes and deeper subjects. A subject at level n only
// ever holds child subjects at level n+1.
type Subject struct {
	Level       int          `json:"level" yaml:"level"`
	Name        string       `json:"name" yaml:"name"`
	OneLiner    OneLiner     `json:"oneLiner,omitempty" yaml:"oneLiner,omitempty"`
	Elaboration []Paragraph  `json:"elaboration,omitempty" yaml:"elaboration,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Subjects    []*Subject   `json:"subjects,omitempty" yaml:"subjects,omitempty"`
	Classes     []*Class     `json:"classes,omitempty" yaml:"classes,omitempty"`
}

type ClassKind uint8

const (
	PlainClass ClassKind = iota
	ValueType
	// ReferenceType has no header syntax; it exists for models built in code.
	ReferenceType
)

func (k ClassKind) String() string {
	switch k {
	case ValueType:
		return "ValueType"
	case ReferenceType:
		return "ReferenceType"
	}
	return "Class"
}

func (k ClassKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ClassRef names another class. References are resolved by validators,
// not by the parser.
type ClassRef string

type Class struct {
	Kind         ClassKind           `json:"kind" yaml:"kind"`
	Name         string              `json:"name" yaml:"name"`
	Plural       string              `json:"plural,omitempty" yaml:"plural,omitempty"`
	Abbreviation string              `json:"abbreviation,omitempty" yaml:"abbreviation,omitempty"`
	OneLiner     OneLiner            `json:"oneLiner,omitempty" yaml:"oneLiner,omitempty"`
	Elaboration  []Paragraph         `json:"elaboration,omitempty" yaml:"elaboration,omitempty"`
	SubtypeOf    []ClassRef          `json:"subtypeOf,omitempty" yaml:"subtypeOf,omitempty"`
	BasedOn      []ClassRef          `json:"basedOn,omitempty" yaml:"basedOn,omitempty"`
	Dependents   []ClassRef          `json:"dependents,omitempty" yaml:"dependents,omitempty"`
	Where        string              `json:"where,omitempty" yaml:"where,omitempty"`
	Sections     []*AttributeSection `json:"sections,omitempty" yaml:"sections,omitempty"`
	Attributes   []*Attribute        `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Annotations  []Annotation        `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// AllAttributes returns the attributes owned directly by the class
// followed by those of each section, in input order.
func (c *Class) AllAttributes() []*Attribute {
	all := make([]*Attribute, 0, len(c.Attributes))
	all = append(all, c.Attributes...)
	for _, s := range c.Sections {
		all = append(all, s.Attributes...)
	}
	return all
}

type AttributeSection struct {
	Name        string       `json:"name" yaml:"name"`
	OneLiner    OneLiner     `json:"oneLiner,omitempty" yaml:"oneLiner,omitempty"`
	Required    bool         `json:"required" yaml:"required"`
	Elaboration []Paragraph  `json:"elaboration,omitempty" yaml:"elaboration,omitempty"`
	Attributes  []*Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

type Attribute struct {
	Name        string          `json:"name" yaml:"name"`
	OneLiner    OneLiner        `json:"oneLiner,omitempty" yaml:"oneLiner,omitempty"`
	Elaboration []Paragraph     `json:"elaboration,omitempty" yaml:"elaboration,omitempty"`
	DataType    *DataTypeClause `json:"dataType,omitempty" yaml:"dataType,omitempty"`
	Annotations []Annotation    `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// Annotation is a labelled note attached to the component that was open
// when it was read.
type Annotation struct {
	Label   string   `json:"label" yaml:"label"`
	Content OneLiner `json:"content" yaml:"content"`
	Emoji   string   `json:"emoji,omitempty" yaml:"emoji,omitempty"`
}

// Walk calls fn for the subject and every subject below it, depth first
// in input order.
func (s *Subject) Walk(fn func(*Subject)) {
	fn(s)
	for _, child := range s.Subjects {
		child.Walk(fn)
	}
}

// Class returns the first class with the given name, case-insensitively,
// anywhere below s.
func (s *Subject) Class(name string) *Class {
	var found *Class
	s.Walk(func(sub *Subject) {
		if found != nil {
			return
		}
		for _, c := range sub.Classes {
			if strings.EqualFold(c.Name, name) {
				found = c
				return
			}
		}
	})
	return found
}

// Attribute returns the attribute with the given name, case-insensitively.
func (c *Class) Attribute(name string) *Attribute {
	for _, a := range c.AllAttributes() {
		if strings.EqualFold(a.Name, name) {
			return a
		}
	}
	return nil
}

// Section returns the attribute section with the given name.
func (c *Class) Section(name string) *AttributeSection {
	for _, s := range c.Sections {
		if strings.EqualFold(s.Name, name) {
			return s
		}
	}
	return nil
}
