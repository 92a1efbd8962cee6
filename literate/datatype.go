package literate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrMalformedMapping = errors.New("mapping is missing its \" to \" separator")
	ErrMissingTypeName  = errors.New("data type has no class name")
)

// DataType is one of Base, List, Set or Mapping.
type DataType interface {
	// String renders the type back as a type phrase.
	String() string
	dataType()
}

type (
	Base struct {
		Class   string
		IsValue bool
	}
	List struct {
		Element DataType
	}
	Set struct {
		Element DataType
	}
	Mapping struct {
		Domain DataType
		Range  DataType
	}
)

func (Base) dataType()    {}
func (List) dataType()    {}
func (Set) dataType()     {}
func (Mapping) dataType() {}

func (b Base) String() string {
	if b.IsValue {
		return b.Class + " value"
	}
	return b.Class + " reference"
}

func (l List) String() string { return "List of " + l.Element.String() }
func (s Set) String() string  { return "Set of " + s.Element.String() }
func (m Mapping) String() string {
	return "Mapping from " + m.Domain.String() + " to " + m.Range.String()
}

// DataTypeClause is the type of an attribute together with its
// optionality and cardinality.
type DataTypeClause struct {
	Optional    bool     `json:"optional" yaml:"optional"`
	Cardinality string   `json:"cardinality,omitempty" yaml:"cardinality,omitempty"`
	Type        DataType `json:"type" yaml:"type"`
}

func (c *DataTypeClause) String() string {
	var b strings.Builder
	if c.Optional {
		b.WriteString("optional ")
	} else {
		b.WriteString("required ")
	}
	if c.Cardinality != "" {
		b.WriteString(c.Cardinality)
		b.WriteByte(' ')
	}
	b.WriteString(c.Type.String())
	return b.String()
}

var cardinalityRe = regexp.MustCompile(`(?i)(?:^|\s)(\d+\.\.(?:\d+|\*|n))(?:\s|$)`)

// ParseDataTypeClause parses a type phrase such as
// "optional List of Department reference" or
// "Mapping from Name to Department value".
func ParseDataTypeClause(phrase string) (*DataTypeClause, error) {
	clause := &DataTypeClause{}
	rest, optional := cutOptionality(strings.TrimSpace(phrase))
	clause.Optional = optional

	if m := cardinalityRe.FindStringSubmatchIndex(rest); m != nil {
		clause.Cardinality = rest[m[2]:m[3]]
		rest = strings.TrimSpace(rest[:m[2]] + " " + rest[m[3]:])
	}

	typ, err := parseDataType(rest)
	if err != nil {
		return nil, err
	}
	clause.Type = typ
	return clause, nil
}

func parseDataType(phrase string) (DataType, error) {
	phrase, _ = cutOptionality(strings.TrimSpace(phrase))

	if rest, ok := cutPrefixFold(phrase, "list of "); ok {
		elem, err := parseDataType(rest)
		if err != nil {
			return nil, err
		}
		return List{Element: elem}, nil
	}
	if rest, ok := cutPrefixFold(phrase, "set of "); ok {
		elem, err := parseDataType(rest)
		if err != nil {
			return nil, err
		}
		return Set{Element: elem}, nil
	}
	if rest, ok := cutPrefixFold(phrase, "mapping from "); ok {
		i := indexFold(rest, " to ")
		if i < 0 {
			return nil, fmt.Errorf("%q: %w", phrase, ErrMalformedMapping)
		}
		domain, err := parseDataType(rest[:i])
		if err != nil {
			return nil, err
		}
		rng, err := parseDataType(rest[i+len(" to "):])
		if err != nil {
			return nil, err
		}
		return Mapping{Domain: domain, Range: rng}, nil
	}

	base := Base{}
	switch {
	case strings.EqualFold(phrase, "value") || hasSuffixFold(phrase, " value"):
		base.IsValue = true
		phrase = phrase[:len(phrase)-len("value")]
	case strings.EqualFold(phrase, "reference") || hasSuffixFold(phrase, " reference"):
		phrase = phrase[:len(phrase)-len("reference")]
	}
	base.Class = strings.TrimSpace(phrase)
	if base.Class == "" {
		return nil, ErrMissingTypeName
	}
	return base, nil
}

func cutOptionality(phrase string) (string, bool) {
	if rest, ok := cutPrefixFold(phrase, "optional "); ok {
		return strings.TrimSpace(rest), true
	}
	if rest, ok := cutPrefixFold(phrase, "required "); ok {
		return strings.TrimSpace(rest), false
	}
	return phrase, false
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

func indexFold(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}
