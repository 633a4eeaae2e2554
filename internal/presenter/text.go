package presenter

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfrederiksen/jobcal/internal/config"
	"github.com/pfrederiksen/jobcal/internal/event"
)

// TextPresenter prints the event and a button-styled link to a terminal.
type TextPresenter struct {
	out    io.Writer
	text   string
	button lipgloss.Style
	muted  lipgloss.Style
}

// NewTextPresenter styles the button after the page button's colors.
func NewTextPresenter(out io.Writer, b config.Button) *TextPresenter {
	button := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 2).
		Foreground(lipgloss.Color(b.Value("color"))).
		Background(lipgloss.Color(b.Value("background-color")))

	return &TextPresenter{
		out:    out,
		text:   b.Text,
		button: button,
		muted:  lipgloss.NewStyle().Faint(true),
	}
}

// Present writes the title, schedule, notes, button and raw link.
func (p *TextPresenter) Present(_ context.Context, link string, rec *event.Record) error {
	if link == "" {
		return ErrNoLink
	}

	fmt.Fprintln(p.out, rec.Title)
	fmt.Fprintln(p.out, p.muted.Render(schedule(rec)))
	if rec.Notes != "" {
		fmt.Fprintln(p.out, rec.Notes)
	}
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.button.Render(p.text))
	_, err := fmt.Fprintln(p.out, link)
	return err
}
