package source

import (
	"sort"
	"strings"
	"sync"

	"github.com/DiscordGophers/dr-literate/literate"
)

// Library holds the loaded documents by case-insensitive name. It is safe
// for concurrent use.
type Library struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

func NewLibrary() *Library {
	return &Library{docs: make(map[string]*Document)}
}

// Add stores d, replacing any document with the same name. It returns
// the replaced document.
func (l *Library) Add(d *Document) *Document {
	key := strings.ToLower(d.Name)

	l.mu.Lock()
	defer l.mu.Unlock()
	old := l.docs[key]
	l.docs[key] = d
	return old
}

func (l *Library) Remove(name string) bool {
	key := strings.ToLower(name)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.docs[key]
	delete(l.docs, key)
	return ok
}

// Documents returns the documents sorted by name.
func (l *Library) Documents() []*Document {
	l.mu.RLock()
	docs := make([]*Document, 0, len(l.docs))
	for _, d := range l.docs {
		docs = append(docs, d)
	}
	l.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Name < docs[j].Name
	})
	return docs
}

func (l *Library) Find(name string) *Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.docs[strings.ToLower(name)]
}

// Result is a node found in one of the library's documents.
type Result struct {
	Document *Document
	Node     *literate.Node
}

// Search searches every document, in name order. Nodes named by query
// exactly, in any document, are returned without the keyword matches.
func (l *Library) Search(query string) []Result {
	var results, exact []Result
	for _, d := range l.Documents() {
		if d.Index == nil {
			continue
		}
		for _, n := range d.Index.Search(query) {
			r := Result{Document: d, Node: n}
			results = append(results, r)
			if literate.IsExact(n, query) {
				exact = append(exact, r)
			}
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return results
}

// Lookup resolves a dotted path in the named document, or in every
// document in name order when name is empty.
func (l *Library) Lookup(name string, parts ...string) (*Document, *literate.Node) {
	if name != "" {
		d := l.Find(name)
		if d == nil || d.Index == nil {
			return nil, nil
		}
		return d, d.Index.Lookup(parts...)
	}
	for _, d := range l.Documents() {
		if d.Index == nil {
			continue
		}
		if n := d.Index.Lookup(parts...); n != nil {
			return d, n
		}
	}
	return nil, nil
}
