package literate

import "encoding/json"

// Data types carry a kind tag when exported so List and Set stay apart.

type typeDoc struct {
	Kind    string   `json:"kind" yaml:"kind"`
	Class   string   `json:"class,omitempty" yaml:"class,omitempty"`
	IsValue bool     `json:"isValue,omitempty" yaml:"isValue,omitempty"`
	Element DataType `json:"element,omitempty" yaml:"element,omitempty"`
	Domain  DataType `json:"domain,omitempty" yaml:"domain,omitempty"`
	Range   DataType `json:"range,omitempty" yaml:"range,omitempty"`
}

func (b Base) doc() typeDoc    { return typeDoc{Kind: "base", Class: b.Class, IsValue: b.IsValue} }
func (l List) doc() typeDoc    { return typeDoc{Kind: "list", Element: l.Element} }
func (s Set) doc() typeDoc     { return typeDoc{Kind: "set", Element: s.Element} }
func (m Mapping) doc() typeDoc { return typeDoc{Kind: "mapping", Domain: m.Domain, Range: m.Range} }

func (b Base) MarshalJSON() ([]byte, error)    { return json.Marshal(b.doc()) }
func (l List) MarshalJSON() ([]byte, error)    { return json.Marshal(l.doc()) }
func (s Set) MarshalJSON() ([]byte, error)     { return json.Marshal(s.doc()) }
func (m Mapping) MarshalJSON() ([]byte, error) { return json.Marshal(m.doc()) }

func (b Base) MarshalYAML() (interface{}, error)    { return b.doc(), nil }
func (l List) MarshalYAML() (interface{}, error)    { return l.doc(), nil }
func (s Set) MarshalYAML() (interface{}, error)     { return s.doc(), nil }
func (m Mapping) MarshalYAML() (interface{}, error) { return m.doc(), nil }
