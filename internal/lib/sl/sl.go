package sl

import (
	"log/slog"
	"strings"
)

func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

func Module(mod string) slog.Attr {
	return slog.String("module", mod)
}

// Secret logs only the edges of a sensitive value.
func Secret(key, value string) slog.Attr {
	if len(value) <= 8 {
		return slog.String(key, strings.Repeat("*", len(value)))
	}
	return slog.String(key, value[:4]+"..."+value[len(value)-4:])
}
