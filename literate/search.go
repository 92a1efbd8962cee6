package literate

import (
	"sort"
	"strings"
)

type NodeKind uint8

const (
	SubjectNode NodeKind = iota
	ClassNode
	SectionNode
	AttributeNode
)

func (k NodeKind) String() string {
	switch k {
	case ClassNode:
		return "class"
	case SectionNode:
		return "section"
	case AttributeNode:
		return "attribute"
	}
	return "subject"
}

// Node is one searchable component of a model.
type Node struct {
	Kind NodeKind
	Name string
	// Path names the enclosing components, outermost first, ending with Name.
	Path  []string
	Depth int

	Subject   *Subject
	Class     *Class
	Section   *AttributeSection
	Attribute *Attribute
}

// Title is the dotted path of the node below the model.
func (n *Node) Title() string {
	if len(n.Path) > 1 {
		return strings.Join(n.Path[1:], ".")
	}
	return n.Name
}

func (n *Node) OneLiner() OneLiner {
	switch n.Kind {
	case ClassNode:
		return n.Class.OneLiner
	case SectionNode:
		return n.Section.OneLiner
	case AttributeNode:
		return n.Attribute.OneLiner
	}
	return n.Subject.OneLiner
}

// Markdown renders the node's component, see the Markdown methods.
func (n *Node) Markdown(limit int) (string, bool) {
	switch n.Kind {
	case ClassNode:
		return n.Class.Markdown(limit)
	case SectionNode:
		return n.Section.Markdown(limit)
	case AttributeNode:
		return n.Attribute.Markdown(limit)
	}
	return n.Subject.Markdown(limit)
}

// Index maps lower-cased words to the nodes they describe.
type Index struct {
	Model    *Model
	Nodes    []*Node
	keywords map[string]map[*Node]struct{}
	Keywords map[string][]*Node
}

func NewIndex(m *Model) *Index {
	ix := &Index{
		Model:    m,
		keywords: make(map[string]map[*Node]struct{}),
		Keywords: make(map[string][]*Node),
	}
	ix.addSubject(&m.Subject, nil)
	ix.keywords = nil
	return ix
}

func (ix *Index) addSubject(s *Subject, path []string) {
	path = appendPath(path, s.Name)
	n := &Node{Kind: SubjectNode, Name: s.Name, Path: path, Depth: len(path), Subject: s}
	ix.add(n, s.Name, string(s.OneLiner), paragraphs(s.Elaboration))

	for _, c := range s.Classes {
		cpath := appendPath(path, c.Name)
		cn := &Node{Kind: ClassNode, Name: c.Name, Path: cpath, Depth: len(cpath), Class: c}
		ix.add(cn, c.Name, c.Plural, c.Abbreviation, string(c.OneLiner), paragraphs(c.Elaboration))

		for _, sec := range c.Sections {
			spath := appendPath(cpath, sec.Name)
			ix.add(&Node{Kind: SectionNode, Name: sec.Name, Path: spath, Depth: len(spath), Class: c, Section: sec},
				sec.Name, string(sec.OneLiner))
		}
		for _, a := range c.AllAttributes() {
			apath := appendPath(cpath, a.Name)
			ix.add(&Node{Kind: AttributeNode, Name: a.Name, Path: apath, Depth: len(apath), Class: c, Attribute: a},
				a.Name, string(a.OneLiner))
		}
	}
	for _, child := range s.Subjects {
		ix.addSubject(child, path)
	}
}

func appendPath(path []string, name string) []string {
	p := make([]string, len(path), len(path)+1)
	copy(p, path)
	return append(p, name)
}

func paragraphs(ps []Paragraph) string {
	var b strings.Builder
	for _, p := range ps {
		b.WriteString(string(p))
		b.WriteByte(' ')
	}
	return b.String()
}

func (ix *Index) add(node *Node, texts ...string) {
	ix.Nodes = append(ix.Nodes, node)
	for _, text := range texts {
		for _, f := range strings.Fields(text) {
			key := strings.ToLower(strings.Trim(f, ".,;:()[]\"'"))
			if key == "" {
				continue
			}
			val := ix.keywords[key]
			if val == nil {
				val = make(map[*Node]struct{})
				ix.keywords[key] = val
			}
			if _, ok := val[node]; ok {
				continue
			}
			val[node] = struct{}{}
			ix.Keywords[key] = append(ix.Keywords[key], node)
		}
	}
}

// Search returns the nodes matching every word of query. When the name or
// trailing part of a title equals the query, only those nodes are returned.
func (ix *Index) Search(query string) []*Node {
	query = strings.ToLower(strings.TrimSpace(query))
	fields := strings.Fields(query)

	switch len(fields) {
	case 0:
		return nil
	}

	// "employee.name" names Staffing.Employee.name exactly. A name
	// several classes share returns all of them.
	var exact []*Node
	for _, n := range ix.Nodes {
		if IsExact(n, query) {
			exact = append(exact, n)
		}
	}
	if len(exact) > 0 {
		sort.Slice(exact, func(i, j int) bool {
			if exact[i].Depth != exact[j].Depth {
				return exact[i].Depth < exact[j].Depth
			}
			return exact[i].Title() < exact[j].Title()
		})
		return exact
	}

	results := map[*Node]int{}
	for _, f := range fields {
		for _, node := range ix.Keywords[f] {
			results[node]++
		}
	}

	keys := make([]*Node, 0, len(results))
	for n, num := range results {
		if num == len(fields) {
			keys = append(keys, n)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		n1, n2 := keys[i], keys[j]

		// names containing the query first
		c1 := strings.Contains(strings.ToLower(n1.Name), query)
		c2 := strings.Contains(strings.ToLower(n2.Name), query)
		if c1 != c2 {
			return c1
		}
		if n1.Depth != n2.Depth {
			return n1.Depth < n2.Depth
		}
		return n1.Title() < n2.Title()
	})
	return keys
}

// Lookup resolves a dotted path such as "Employee.name" or
// "Staffing.Employee". The first part may name any subject or class.
func (ix *Index) Lookup(parts ...string) *Node {
	if len(parts) == 0 {
		return nil
	}
	var cur *Node
	for _, n := range ix.Nodes {
		if strings.EqualFold(n.Name, parts[0]) && (n.Kind == SubjectNode || n.Kind == ClassNode) {
			cur = n
			break
		}
	}
	for _, part := range parts[1:] {
		if cur == nil {
			return nil
		}
		var next *Node
		for _, n := range ix.Nodes {
			if len(n.Path) == len(cur.Path)+1 && hasPrefixFold(n.Path, cur.Path) && strings.EqualFold(n.Name, part) {
				next = n
				break
			}
		}
		if next == nil && cur.Kind == ClassNode {
			// attributes inside sections can be named from the class
			if a := cur.Class.Attribute(part); a != nil {
				for _, n := range ix.Nodes {
					if n.Attribute == a {
						next = n
						break
					}
				}
			}
		}
		cur = next
	}
	return cur
}

// IsExact reports whether query names n, i.e. equals its name or a
// trailing part of its title, ignoring case.
func IsExact(n *Node, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	return query != "" && strings.HasSuffix("."+strings.ToLower(n.Title()), "."+query)
}

func hasPrefixFold(path, prefix []string) bool {
	if len(prefix) > len(path) {
		return false
	}
	for i := range prefix {
		if !strings.EqualFold(path[i], prefix[i]) {
			return false
		}
	}
	return true
}
