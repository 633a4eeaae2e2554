package presenter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pfrederiksen/jobcal/internal/config"
	"github.com/pfrederiksen/jobcal/internal/event"
	"github.com/pfrederiksen/jobcal/internal/logger"
)

// ErrContainerNotFound is returned when the page has no element to hold the button.
var ErrContainerNotFound = errors.New("button container not found")

// DOMPresenter prepends a calendar button to the page and writes the
// resulting HTML.
type DOMPresenter struct {
	doc       *goquery.Document
	container string
	button    config.Button
	out       io.Writer
}

// NewDOMPresenter creates a presenter that modifies doc and writes it to out.
func NewDOMPresenter(doc *goquery.Document, cfg *config.Config, out io.Writer) *DOMPresenter {
	return &DOMPresenter{
		doc:       doc,
		container: cfg.Selectors.Container,
		button:    cfg.Button,
		out:       out,
	}
}

// NewButton builds the anchor element for link.
func NewButton(link string, b config.Button) *html.Node {
	a := &html.Node{
		Type:     html.ElementNode,
		Data:     "a",
		DataAtom: atom.A,
		Attr: []html.Attribute{
			{Key: "href", Val: link},
			{Key: "target", Val: "_blank"},
			{Key: "rel", Val: "noopener"},
			{Key: "style", Val: b.CSS()},
		},
	}
	a.AppendChild(&html.Node{Type: html.TextNode, Data: b.Text})
	return a
}

// Present inserts the button as the first child of the container and writes
// the document. When the container is missing the document is left untouched.
func (p *DOMPresenter) Present(_ context.Context, link string, _ *event.Record) error {
	if link == "" {
		return ErrNoLink
	}

	container := p.doc.Find(p.container).First()
	if container.Length() == 0 {
		logger.Error("button container not found", logger.Fields{"selector": p.container}, ErrContainerNotFound)
		return ErrContainerNotFound
	}

	container.PrependNodes(NewButton(link, p.button))
	logger.Info("calendar button added", logger.Fields{"selector": p.container})

	for _, n := range p.doc.Nodes {
		if err := html.Render(p.out, n); err != nil {
			return fmt.Errorf("rendering page: %w", err)
		}
	}
	return nil
}
