package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/plist-format/go-plist/plist"
)

func MustString(node *plist.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
