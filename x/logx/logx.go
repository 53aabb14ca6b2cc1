// Package logx is a small levelled logger in the firmware's println style.
// It avoids fmt so it stays cheap on MCU builds; values are rendered with
// x/conv. Output defaults to the runtime console (println) and can be
// redirected when the console carries protocol traffic.
package logx

import (
	"io"
	"sync"

	"fixturecode-go/x/conv"
)

type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
	LevelOff
)

var (
	mu    sync.Mutex
	out   io.Writer // nil => println
	level = LevelInfo
	line  [160]byte
)

// SetOutput redirects log lines. nil restores the runtime console.
func SetOutput(w io.Writer) {
	mu.Lock()
	out = w
	mu.Unlock()
}

// SetLevel drops lines below l.
func SetLevel(l Level) {
	mu.Lock()
	level = l
	mu.Unlock()
}

func Debug(parts ...any) { emit(LevelDebug, "Debug:", parts) }
func Info(parts ...any)  { emit(LevelInfo, "Info:", parts) }
func Error(parts ...any) { emit(LevelError, "Error:", parts) }

func emit(l Level, prefix string, parts []any) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	b := append(line[:0], prefix...)
	for _, p := range parts {
		b = append(b, ' ')
		b = appendValue(b, p)
	}
	if out == nil {
		println(string(b))
		return
	}
	b = append(b, '\n')
	_, _ = out.Write(b)
}

func appendValue(b []byte, v any) []byte {
	switch x := v.(type) {
	case string:
		return append(b, x...)
	case []byte:
		return append(b, x...)
	case error:
		if x == nil {
			return append(b, "<nil>"...)
		}
		return append(b, x.Error()...)
	case bool:
		if x {
			return append(b, "true"...)
		}
		return append(b, "false"...)
	case int:
		return conv.AppendInt(b, int64(x))
	case int32:
		return conv.AppendInt(b, int64(x))
	case int64:
		return conv.AppendInt(b, x)
	case uint8:
		return conv.AppendUint(b, uint64(x))
	case uint16:
		return conv.AppendUint(b, uint64(x))
	case uint32:
		return conv.AppendUint(b, uint64(x))
	case uint64:
		return conv.AppendUint(b, x)
	case uint:
		return conv.AppendUint(b, uint64(x))
	case interface{ String() string }:
		return append(b, x.String()...)
	case nil:
		return append(b, "<nil>"...)
	default:
		return append(b, '?')
	}
}
