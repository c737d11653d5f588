package logger

import (
	"log/slog"
	"strconv"
	"time"
)

func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups the non-nil errors under "errors". All-nil input yields an
// empty Attr, which slog drops.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error logs err under "error"; nil yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// DialogID records the platform dialog identifier under "dialog_id".
func DialogID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("dialog_id", id)
}

// Unit records the unit name.
func Unit(name string) slog.Attr {
	return slog.String("unit", name)
}

// Kind records the unit kind.
func Kind(kind string) slog.Attr {
	return slog.String("kind", kind)
}

func Lang(lang string) slog.Attr {
	return slog.String("lang", lang)
}

func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

func Stream(name string) slog.Attr {
	return slog.String("stream", name)
}
