package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type MessageSender interface {
	SendMessage(msg string)
}

// TelegramHandler duplicates records at or above level to a chat, the
// wrapped handler still receives everything.
type TelegramHandler struct {
	handler slog.Handler
	sender  MessageSender
	level   slog.Level
	attrs   []slog.Attr
}

func SetupTelegramHandler(log *slog.Logger, sender MessageSender, level slog.Level) *slog.Logger {
	return slog.New(&TelegramHandler{
		handler: log.Handler(),
		sender:  sender,
		level:   level,
	})
}

func (h *TelegramHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *TelegramHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level && h.sender != nil {
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%s: %s", r.Level.String(), r.Message))
		for _, a := range h.attrs {
			b.WriteString(fmt.Sprintf("\n%s: %s", a.Key, a.Value.String()))
		}
		r.Attrs(func(a slog.Attr) bool {
			b.WriteString(fmt.Sprintf("\n%s: %s", a.Key, a.Value.String()))
			return true
		})
		go h.sender.SendMessage(b.String())
	}
	return h.handler.Handle(ctx, r)
}

func (h *TelegramHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &TelegramHandler{
		handler: h.handler.WithAttrs(attrs),
		sender:  h.sender,
		level:   h.level,
		attrs:   merged,
	}
}

func (h *TelegramHandler) WithGroup(name string) slog.Handler {
	return &TelegramHandler{
		handler: h.handler.WithGroup(name),
		sender:  h.sender,
		level:   h.level,
		attrs:   h.attrs,
	}
}
