package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/signadot/plist-format/go-plist/plist"

	j "github.com/goccy/go-json"
)

type debug struct {
	Heap  bool
	Codec bool
	Diff  bool
	Level slog.Level
}

var d *debug

func init() {
	d = &debug{}
	d.Heap = boolEnv("PLIST_DEBUG_HEAP")
	d.Codec = boolEnv("PLIST_DEBUG_CODEC")
	d.Diff = boolEnv("PLIST_DEBUG_DIFF")
	d.Level = levelEnv("PLIST_LOG_LEVEL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func levelEnv(v string) slog.Level {
	lvl, err := ParseLevel(os.Getenv(v))
	if err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// ParseLevel reads a slog level name. The empty string is warn.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelWarn, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelWarn, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

func Heap() bool {
	return d.Heap
}
func Codec() bool {
	return d.Codec
}
func Diff() bool {
	return d.Diff
}
func Level() slog.Level {
	if d.Heap && d.Level > slog.LevelDebug {
		return slog.LevelDebug
	}
	return d.Level
}

// NewLogger returns a text logger on w without timestamps or INFO level
// markers.
func NewLogger(w io.Writer, lvl slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.LevelKey {
				if a.Value.String() == "INFO" {
					return slog.Attr{}
				}
			}
			return a
		},
	}))
}

// Logger is NewLogger on stderr at Level.
func Logger() *slog.Logger {
	return NewLogger(os.Stderr, Level())
}

func LogAny(v any) {
	d, err := j.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(append(d, '\n'))
}

type nodeValue struct{ n *plist.Node }

func (v nodeValue) LogValue() slog.Value {
	if v.n == nil {
		return slog.StringValue("<nil>")
	}
	s, err := v.n.Display()
	if err != nil {
		return slog.StringValue(fmt.Sprintf("<%s: %v>", v.n.Kind(), err))
	}
	return slog.GroupValue(
		slog.String("kind", v.n.Kind().String()),
		slog.String("value", s))
}

// Node renders n as a log attribute value.
func Node(n *plist.Node) slog.LogValuer { return nodeValue{n} }
