package libdiff

import (
	"fmt"
	"strings"

	"github.com/signadot/plist-format/go-plist/kpath"
	"github.com/signadot/plist-format/go-plist/plist"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Change is one difference between two trees. From and To hold the
// display text of the old and new values; From is empty for Insert and To
// for Delete.
type Change struct {
	Path     *kpath.KPath
	Op       Op
	FromKind plist.Kind
	ToKind   plist.Kind
	From     string
	To       string
	Text     []diffpatch.Diff
}

func (c *Change) String() string {
	path := c.Path.String()
	if path == "" {
		path = "(root)"
	}
	switch c.Op {
	case Insert:
		return fmt.Sprintf("+ %s: %s", path, c.To)
	case Delete:
		return fmt.Sprintf("- %s: %s", path, c.From)
	case Edit:
		return fmt.Sprintf("~ %s: %s", path, renderText(c.Text))
	}
	if c.FromKind != c.ToKind {
		return fmt.Sprintf("~ %s: %s (%s) -> %s (%s)", path, c.From, c.FromKind, c.To, c.ToKind)
	}
	return fmt.Sprintf("~ %s: %s -> %s", path, c.From, c.To)
}

// renderText writes deletions as [-x-] and insertions as {+x+}.
func renderText(diffs []diffpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			b.WriteString("[-" + d.Text + "-]")
		case diffpatch.DiffInsert:
			b.WriteString("{+" + d.Text + "+}")
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

func makeChange(path *kpath.KPath, op Op, from, to *plist.Node) (Change, error) {
	c := Change{Path: path, Op: op, FromKind: plist.NoneKind, ToKind: plist.NoneKind}
	var err error
	if from != nil {
		c.FromKind = from.Kind()
		if c.From, err = from.Display(); err != nil {
			return c, fmt.Errorf("%s: %w", path, err)
		}
	}
	if to != nil {
		c.ToKind = to.Kind()
		if c.To, err = to.Display(); err != nil {
			return c, fmt.Errorf("%s: %w", path, err)
		}
	}
	return c, nil
}

func single(path *kpath.KPath, op Op, from, to *plist.Node) ([]Change, error) {
	c, err := makeChange(path, op, from, to)
	if err != nil {
		return nil, err
	}
	return []Change{c}, nil
}
