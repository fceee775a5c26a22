package format

import (
	"errors"
	"fmt"
)

type Format int

const (
	XMLFormat Format = iota
	BinaryFormat
	OpenStepFormat
	JSONFormat
	YAMLFormat
	PrettyFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"x":        XMLFormat,
		"xml":      XMLFormat,
		"xml1":     XMLFormat,
		"b":        BinaryFormat,
		"bin":      BinaryFormat,
		"binary":   BinaryFormat,
		"binary1":  BinaryFormat,
		"o":        OpenStepFormat,
		"openstep": OpenStepFormat,
		"j":        JSONFormat,
		"json":     JSONFormat,
		"y":        YAMLFormat,
		"yaml":     YAMLFormat,
		"p":        PrettyFormat,
		"pretty":   PrettyFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case XMLFormat:
		return []byte("xml"), nil
	case BinaryFormat:
		return []byte("binary"), nil
	case OpenStepFormat:
		return []byte("openstep"), nil
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case PrettyFormat:
		return []byte("pretty"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

// IsWire reports whether f is one of the native property-list encodings.
func (f Format) IsWire() bool {
	return f == XMLFormat || f == BinaryFormat || f == OpenStepFormat
}

// IsText reports whether output in f is printable text.
func (f Format) IsText() bool { return f != BinaryFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case XMLFormat, BinaryFormat, OpenStepFormat:
		return ".plist"
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	case PrettyFormat:
		return ".txt"
	default:
		return ""
	}
}

// AllFormats returns all supported formats.
func AllFormats() []Format {
	return []Format{XMLFormat, BinaryFormat, OpenStepFormat, JSONFormat, YAMLFormat, PrettyFormat}
}
