package libdiff

import (
	"slices"

	"github.com/signadot/plist-format/go-plist/kpath"
	"github.com/signadot/plist-format/go-plist/plist"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffArrayByIndex aligns the elements of two arrays before comparing
// them.
//
//  1. each element is summarised: scalars by kind and display text,
//     containers by kind alone
//  2. the summaries are mapped to runes and the rune sequences diffed
//  3. aligned elements are compared with df, which recurses into
//     containers
//  4. a deletion directly followed by an insertion is compared pairwise;
//     what is left over becomes Delete or Insert changes
func DiffArrayByIndex(path *kpath.KPath, from, to *plist.Node, df DiffFunc) ([]Change, error) {
	fromItems := slices.Collect(from.Values())
	toItems := slices.Collect(to.Values())
	m := map[string]rune{}
	fromRunes, err := mapValues(m, fromItems)
	if err != nil {
		return nil, err
	}
	toRunes, err := mapValues(m, toItems)
	if err != nil {
		return nil, err
	}
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	var (
		res     []Change
		pending []int
		fi, ti  int
	)
	emit := func(cs []Change, err error) error {
		if err != nil {
			return err
		}
		res = append(res, cs...)
		return nil
	}
	flush := func() error {
		for _, i := range pending {
			if err := emit(single(path.Append(kpath.Index(i)), Delete, fromItems[i], nil)); err != nil {
				return err
			}
		}
		pending = pending[:0]
		return nil
	}
	for _, d := range diffs {
		n := len([]rune(d.Text))
		switch d.Type {
		case diffpatch.DiffDelete:
			for range n {
				pending = append(pending, fi)
				fi++
			}
		case diffpatch.DiffInsert:
			for range n {
				kp := path.Append(kpath.Index(ti))
				if len(pending) > 0 {
					err = emit(df(kp, fromItems[pending[0]], toItems[ti]))
					pending = pending[1:]
				} else {
					err = emit(single(kp, Insert, nil, toItems[ti]))
				}
				if err != nil {
					return nil, err
				}
				ti++
			}
		case diffpatch.DiffEqual:
			if err := flush(); err != nil {
				return nil, err
			}
			for range n {
				if err := emit(df(path.Append(kpath.Index(ti)), fromItems[fi], toItems[ti])); err != nil {
					return nil, err
				}
				fi++
				ti++
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return res, nil
}

func mapValues(m map[string]rune, items []*plist.Node) ([]rune, error) {
	res := make([]rune, len(items))
	for i, item := range items {
		s := item.Kind().String()
		if !item.Kind().IsContainer() {
			v, err := item.Display()
			if err != nil {
				return nil, err
			}
			s += "-" + v
		}
		r, ok := m[s]
		if !ok {
			r = rune(len(m) + 1)
			m[s] = r
		}
		res[i] = r
	}
	return res, nil
}
