// Package telegram is a minimal Telegram Bot API client used to deliver
// calendar links to a chat.
package telegram
