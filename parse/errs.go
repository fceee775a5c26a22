package parse

import (
	"errors"
	"fmt"

	"github.com/signadot/plist-format/go-plist/plist"
)

var (
	ErrNull        = fmt.Errorf("%w: null has no property list value", plist.ErrFormat)
	ErrUnparseable = fmt.Errorf("%w: format is write only", plist.ErrFormat)
	errTrailing    = errors.New("trailing data")
)

func parseErr(err error) error {
	return fmt.Errorf("%w: %w", plist.ErrParse, err)
}
