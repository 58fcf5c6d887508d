package transcoder

import (
	"github.com/wippyai/scriptvalue/transcoder/internal/types"
)

// SuperKey names the slot a base type encodes into when composing.
// Keyed containers route it to the super writer/reader of the same object,
// so base and derived fields share one node.
const SuperKey = "super"

// Marshaler is implemented by types that encode themselves.
type Marshaler interface {
	MarshalScript(w *Writer) error
}

// Unmarshaler is implemented by types that decode themselves.
// UnmarshalScript must have a pointer receiver.
type Unmarshaler interface {
	UnmarshalScript(r *Reader) error
}

type TypeKind = types.Kind

const (
	KindBool        = types.KindBool
	KindInt8        = types.KindInt8
	KindInt16       = types.KindInt16
	KindInt32       = types.KindInt32
	KindInt64       = types.KindInt64
	KindUint8       = types.KindUint8
	KindUint16      = types.KindUint16
	KindUint32      = types.KindUint32
	KindUint64      = types.KindUint64
	KindFloat32     = types.KindFloat32
	KindFloat64     = types.KindFloat64
	KindString      = types.KindString
	KindTime        = types.KindTime
	KindURL         = types.KindURL
	KindUUID        = types.KindUUID
	KindBytes       = types.KindBytes
	KindText        = types.KindText
	KindPointer     = types.KindPointer
	KindInterface   = types.KindInterface
	KindSlice       = types.KindSlice
	KindArray       = types.KindArray
	KindMap         = types.KindMap
	KindStruct      = types.KindStruct
	KindUnsupported = types.KindUnsupported
)

type Plan = types.Plan
type PlanField = types.Field
