package libdiff

import (
	"errors"
	"fmt"
	"strings"

	"github.com/signadot/plist-format/go-plist/kpath"
	"github.com/signadot/plist-format/go-plist/plist"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

var ErrPatch = errors.New("string patch does not apply")

// DiffString reports an Edit when less than half of the shorter string
// changes and a Replace otherwise.
func DiffString(path *kpath.KPath, from, to *plist.Node) ([]Change, error) {
	a, err := from.StringVal()
	if err != nil {
		return nil, err
	}
	b, err := to.StringVal()
	if err != nil {
		return nil, err
	}
	if a == b {
		return nil, nil
	}
	dmp := diffpatch.New()
	multiLine := strings.Contains(a, "\n") && strings.Contains(b, "\n")
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(a, b, multiLine))
	size := 0
	for _, d := range diffs {
		if d.Type != diffpatch.DiffEqual {
			size += len(d.Text)
		}
	}
	if size > min(len(a), len(b))/2 {
		return single(path, Replace, from, to)
	}
	c, err := makeChange(path, Edit, from, to)
	if err != nil {
		return nil, err
	}
	c.Text = diffs
	return []Change{c}, nil
}

// PatchString applies the text of an Edit to doc.
func PatchString(doc string, diffs []diffpatch.Diff) (string, error) {
	dmp := diffpatch.New()
	if src := dmp.DiffText1(diffs); src != doc {
		return "", fmt.Errorf("%w: expected %q, got %q", ErrPatch, src, doc)
	}
	return dmp.DiffText2(diffs), nil
}
