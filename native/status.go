package native

import "fmt"

// Status is the result code of a store call.
type Status int32

const (
	Success       Status = 0
	ErrInvalidArg Status = -1
	ErrFormat     Status = -2
	ErrParse      Status = -3
	ErrNoMem      Status = -4
	ErrUnknown    Status = -255
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case ErrInvalidArg:
		return "invalid argument"
	case ErrFormat:
		return "format error"
	case ErrParse:
		return "parse error"
	case ErrNoMem:
		return "out of memory"
	case ErrUnknown:
		return "unknown error"
	}
	return fmt.Sprintf("status(%d)", int32(s))
}

// Type is the tag stored with every node. The numbering follows the C
// library this package stands in for.
type Type int32

const (
	Boolean Type = iota
	Uint
	Real
	String
	Array
	Dict
	Date
	Data
	Key
	UID
	None
)

func (t Type) String() string {
	s, ok := map[Type]string{
		Boolean: "boolean",
		Uint:    "integer",
		Real:    "real",
		String:  "string",
		Array:   "array",
		Dict:    "dict",
		Date:    "date",
		Data:    "data",
		Key:     "key",
		UID:     "uid",
		None:    "none",
	}[t]
	if ok {
		return s
	}
	return "unknown"
}

// IsContainer reports whether nodes of type t hold children.
func (t Type) IsContainer() bool {
	return t == Array || t == Dict
}
