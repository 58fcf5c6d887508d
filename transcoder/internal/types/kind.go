package types

type Kind uint8

const (
	KindBool Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindTime
	KindURL
	KindUUID
	KindBytes
	KindText
	KindPointer
	KindInterface
	KindSlice
	KindArray
	KindMap
	KindStruct
	KindUnsupported
)

var kindNames = [...]string{
	KindBool:        "bool",
	KindInt8:        "int8",
	KindInt16:       "int16",
	KindInt32:       "int32",
	KindInt64:       "int64",
	KindUint8:       "uint8",
	KindUint16:      "uint16",
	KindUint32:      "uint32",
	KindUint64:      "uint64",
	KindFloat32:     "float32",
	KindFloat64:     "float64",
	KindString:      "string",
	KindTime:        "time",
	KindURL:         "url",
	KindUUID:        "uuid",
	KindBytes:       "bytes",
	KindText:        "text",
	KindPointer:     "pointer",
	KindInterface:   "interface",
	KindSlice:       "slice",
	KindArray:       "array",
	KindMap:         "map",
	KindStruct:      "struct",
	KindUnsupported: "unsupported",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

func (k Kind) IsSigned() bool {
	return k >= KindInt8 && k <= KindInt64
}

func (k Kind) IsUnsigned() bool {
	return k >= KindUint8 && k <= KindUint64
}

func (k Kind) IsInteger() bool {
	return k.IsSigned() || k.IsUnsigned()
}

func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// IsBridge reports kinds represented as a single string or number leaf.
func (k Kind) IsBridge() bool {
	return k >= KindTime && k <= KindText
}

// Bits returns the width of numeric kinds and 0 otherwise. Platform-sized
// int and uint are compiled to their 64-bit kinds.
func (k Kind) Bits() int {
	switch k {
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	default:
		return 0
	}
}
