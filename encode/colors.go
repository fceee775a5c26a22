package encode

import (
	"strings"

	"github.com/signadot/plist-format/go-plist/plist"

	"github.com/fatih/color"
)

type Colorable struct {
	Kind plist.Kind
	Attr ColorAttr
}

type ColorAttr int

const (
	KeyColor ColorAttr = iota
	ValueColor
	IndexColor
	SepColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, k := range plist.Kinds() {
		able := Colorable{Kind: k, Attr: SepColor}
		colors.Map[able] = color.RGB(255, 0, 196).SprintfFunc()
	}
	able := Colorable{Attr: ValueColor}

	able.Kind = plist.IntegerKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()
	able.Kind = plist.RealKind
	colors.Map[able] = color.RGB(128, 216, 236).SprintfFunc()

	able.Kind = plist.BoolKind
	colors.Map[able] = color.CyanString

	able.Kind = plist.StringKind
	colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()

	able.Kind = plist.DataKind
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()

	able.Kind = plist.DateKind
	colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()

	able.Kind = plist.UIDKind
	colors.Map[able] = color.RGB(196, 168, 128).SprintfFunc()

	able.Kind = plist.DictKind
	able.Attr = KeyColor
	colors.Map[able] = color.RGB(128, 168, 196).SprintfFunc()

	able.Kind = plist.ArrayKind
	able.Attr = IndexColor
	colors.Map[able] = color.RGB(96, 96, 96).SprintfFunc()

	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(k plist.Kind, a ColorAttr, s string) string {
	return c.Get(k, a)(s)
}

func (c *Colors) Get(k plist.Kind, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Kind: k, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
