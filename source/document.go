// Package source loads Literate Model documents from files and web pages.
package source

import (
	"path"
	"strings"
	"time"

	"github.com/DiscordGophers/dr-literate/literate"
)

// Document is one notation text together with its parsed model.
type Document struct {
	// Name is the model name once parsed, or the base of Location before.
	Name     string
	Location string
	Text     string

	Model  *literate.Model
	Index  *literate.Index
	Loaded time.Time
}

func newDocument(location, text string) *Document {
	name := path.Base(location)
	name = strings.TrimSuffix(name, path.Ext(name))
	return &Document{
		Name:     name,
		Location: location,
		Text:     text,
		Loaded:   time.Now(),
	}
}

// FromText parses text read from location.
func FromText(location, text string) (*Document, error) {
	d := newDocument(location, text)
	if err := d.Parse(); err != nil {
		return nil, err
	}
	return d, nil
}

// Parse parses Text and indexes the model. The document is left unchanged
// when the text does not parse.
func (d *Document) Parse() error {
	m, err := literate.Parse(d.Text)
	if err != nil {
		return err
	}
	d.Model = m
	d.Index = literate.NewIndex(m)
	if m.Name != "" {
		d.Name = m.Name
	}
	return nil
}
