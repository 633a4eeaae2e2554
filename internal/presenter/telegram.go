package presenter

import (
	"context"
	"fmt"
	"strings"

	"github.com/pfrederiksen/jobcal/internal/event"
	"github.com/pfrederiksen/jobcal/internal/telegram"
)

// MessageSender sends one formatted message.
type MessageSender interface {
	SendMessage(ctx context.Context, text string) error
}

var _ MessageSender = (*telegram.Client)(nil)

// TelegramPresenter sends the link to a Telegram chat.
type TelegramPresenter struct {
	sender     MessageSender
	buttonText string
}

// NewTelegramPresenter creates a presenter sending through sender.
func NewTelegramPresenter(sender MessageSender, buttonText string) *TelegramPresenter {
	return &TelegramPresenter{sender: sender, buttonText: buttonText}
}

// Present sends the title, schedule and calendar link.
func (p *TelegramPresenter) Present(ctx context.Context, link string, rec *event.Record) error {
	if link == "" {
		return ErrNoLink
	}
	if err := p.sender.SendMessage(ctx, formatMessage(link, rec, p.buttonText)); err != nil {
		return fmt.Errorf("sending calendar link: %w", err)
	}
	return nil
}

func formatMessage(link string, rec *event.Record, buttonText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n", telegram.EscapeHTML(rec.Title))
	fmt.Fprintf(&b, "📅 %s\n", telegram.EscapeHTML(schedule(rec)))
	if rec.Notes != "" {
		fmt.Fprintf(&b, "%s\n", telegram.EscapeHTML(rec.Notes))
	}
	fmt.Fprintf(&b, "\n<a href=\"%s\">%s</a>", telegram.EscapeHTML(link), telegram.EscapeHTML(buttonText))
	return b.String()
}
