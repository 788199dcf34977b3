package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ctxKey struct{}

const ginKey = "logger"

var (
	mu   sync.Mutex
	base *slog.Logger
)

// Init configures the global JSON logger. Output goes to stdout and, when
// filePath is set, to a size-rotated file.
func Init(component, filePath string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	var w io.Writer = os.Stdout
	if filePath != "" {
		_ = os.MkdirAll(filepath.Dir(filePath), 0o755)
		rot := &lumberjack.Logger{
			Filename:   filePath,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		}
		w = io.MultiWriter(os.Stdout, rot)
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	base = slog.New(h).With("component", component)
	return base
}

// Base returns the global logger, falling back to stdout-only JSON.
func Base() *slog.Logger {
	mu.Lock()
	l := base
	mu.Unlock()
	if l == nil {
		return Init("app", "")
	}
	return l
}

func New(component string) *slog.Logger {
	return Base().With("component", component)
}

func WithCtx(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func FromCtx(ctx context.Context) *slog.Logger {
	if v := ctx.Value(ctxKey{}); v != nil {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return Base()
}

// With stores the request logger in the gin context and in the request context,
// so use cases reached through c.Request.Context() log with the same attributes.
func With(c *gin.Context, l *slog.Logger) {
	c.Set(ginKey, l)
	c.Request = c.Request.WithContext(WithCtx(c.Request.Context(), l))
}

func From(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(ginKey); ok {
		if l, ok := v.(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return Base()
}
