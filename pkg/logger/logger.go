package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// Options controls how the process-wide slog logger is built.
type Options struct {
	Level      string // debug | info | warn | error
	Format     string // console | json
	OutputPath string // stdout | stderr | file path
	AddSource  bool
}

var (
	root        *slog.Logger
	atomicLevel = new(slog.LevelVar)
)

// Init builds the root logger and installs it as the slog default.
func Init(opts Options) (*slog.Logger, error) {
	atomicLevel.Set(ParseLevel(opts.Level))

	var writer io.Writer
	switch strings.ToLower(opts.OutputPath) {
	case "stdout", "":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	default:
		file, err := os.OpenFile(opts.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return nil, err
		}
		writer = file
	}

	var handler slog.Handler
	if strings.EqualFold(opts.Format, "json") {
		handler = slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level:     atomicLevel,
			AddSource: opts.AddSource,
		})
	} else {
		handler = tint.NewHandler(writer, &tint.Options{
			Level:       atomicLevel,
			TimeFormat:  time.DateTime,
			AddSource:   opts.AddSource,
			NoColor:     !isTerminal(writer),
			ReplaceAttr: replaceErrAttr,
		})
	}

	root = slog.New(handler)
	slog.SetDefault(root)
	return root, nil
}

// ParseLevel maps a config string onto a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func SetLevel(level slog.Level) {
	atomicLevel.Set(level)
}

// Get returns the root logger, falling back to a stdout tint handler when Init was not called.
func Get() *slog.Logger {
	if root != nil {
		return root
	}
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:       slog.LevelInfo,
		TimeFormat:  time.DateTime,
		NoColor:     !isTerminal(os.Stdout),
		ReplaceAttr: replaceErrAttr,
	}))
}

func replaceErrAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" && a.Value.Kind() == slog.KindAny {
		if err, ok := a.Value.Any().(error); ok {
			return tint.Err(err)
		}
	}
	return a
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}
