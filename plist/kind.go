package plist

import (
	"fmt"

	"github.com/signadot/plist-format/go-plist/native"
)

type Kind int

const (
	BoolKind Kind = iota
	IntegerKind
	RealKind
	DateKind
	DataKind
	StringKind
	ArrayKind
	DictKind
	UIDKind
	KeyKind
	UnknownKind
	NoneKind
)

var kindNames = map[Kind]string{
	BoolKind:    "Boolean",
	IntegerKind: "Integer",
	RealKind:    "Real",
	DateKind:    "Date",
	DataKind:    "Data",
	StringKind:  "String",
	ArrayKind:   "Array",
	DictKind:    "Dictionary",
	UIDKind:     "UID",
	KeyKind:     "Key",
	UnknownKind: "Unknown",
	NoneKind:    "None",
}

func (k Kind) String() string {
	s, ok := kindNames[k]
	if ok {
		return s
	}
	return "<unknown kind>"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(d []byte) error {
	for kk, s := range kindNames {
		if s == string(d) {
			*k = kk
			return nil
		}
	}
	return fmt.Errorf("unrecognized kind %q", d)
}

func Kinds() []Kind {
	return []Kind{
		BoolKind,
		IntegerKind,
		RealKind,
		DateKind,
		DataKind,
		StringKind,
		ArrayKind,
		DictKind,
		UIDKind,
		KeyKind,
		UnknownKind,
		NoneKind,
	}
}

func (k Kind) IsContainer() bool {
	return k == ArrayKind || k == DictKind
}

func kindOf(t native.Type) Kind {
	switch t {
	case native.Boolean:
		return BoolKind
	case native.Uint:
		return IntegerKind
	case native.Real:
		return RealKind
	case native.String:
		return StringKind
	case native.Array:
		return ArrayKind
	case native.Dict:
		return DictKind
	case native.Date:
		return DateKind
	case native.Data:
		return DataKind
	case native.Key:
		return KeyKind
	case native.UID:
		return UIDKind
	case native.None:
		return NoneKind
	}
	return UnknownKind
}
