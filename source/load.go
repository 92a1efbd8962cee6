package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// Selector matches the elements of an HTML page that hold notation.
const Selector = "pre.literate, code.language-literate, [data-literate]"

// ErrNoNotation is returned for HTML pages without any notation block.
var ErrNoNotation = errors.New("page has no literate model blocks")

// Open loads location with Fetch when it is an http(s) URL and with Load
// otherwise.
func Open(ctx context.Context, client *http.Client, location string) (*Document, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return Fetch(ctx, client, location)
	}
	return Load(location)
}

// Load reads a notation file, or the notation blocks of a local HTML page,
// and parses it.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "could not read document")
	}

	text := string(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		text, err = Extract(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrapf(err, "could not extract notation from %s", path)
		}
	}

	d, err := FromText(filepath.ToSlash(path), text)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", path)
	}
	return d, nil
}

// Fetch downloads url and parses it. HTML responses are searched for
// notation blocks, anything else is read as notation.
func Fetch(ctx context.Context, client *http.Client, url string) (*Document, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not create request")
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not get document")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("could not get document: %s returned %s", url, res.Status)
	}

	var text string
	mediaType, _, _ := mime.ParseMediaType(res.Header.Get("Content-Type"))
	if mediaType == "text/html" {
		text, err = Extract(res.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "could not extract notation from %s", url)
		}
	} else {
		data, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, errors.Wrap(err, "could not read body")
		}
		text = string(data)
	}

	d, err := FromText(url, text)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", url)
	}
	return d, nil
}

// Extract returns the text of every notation block in an HTML page, in
// page order, separated by blank lines.
func Extract(r io.Reader) (string, error) {
	root, err := html.Parse(r)
	if err != nil {
		return "", errors.Wrap(err, "could not parse body")
	}
	document := goquery.NewDocumentFromNode(root)

	var blocks []string
	document.Find(Selector).Each(func(_ int, s *goquery.Selection) {
		// a <pre class="literate"><code class="language-literate"> pair
		// would otherwise be read twice
		if s.ParentsFiltered(Selector).Length() > 0 {
			return
		}
		text := strings.Trim(s.Text(), "\n")
		if strings.TrimSpace(text) != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		return "", ErrNoNotation
	}
	return strings.Join(blocks, "\n\n"), nil
}
