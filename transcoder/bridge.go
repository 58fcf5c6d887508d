package transcoder

import (
	"encoding"
	"encoding/base64"
	"net/url"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/wippyai/scriptvalue/errors"
	"github.com/wippyai/scriptvalue/transcoder/internal/numeric"
	"github.com/wippyai/scriptvalue/value"
)

// Bridged types cross the boundary as strings, except time.Time under
// DateUnixMilli, which crosses as a number:
//
//	time.Time  RFC 3339 string or Unix milliseconds
//	url.URL    its String form
//	uuid.UUID  canonical hyphenated form
//	[]byte     standard base64
//	text types MarshalText / UnmarshalText

func (w *Writer) encodeBridge(plan *Plan, rv reflect.Value) error {
	b := w.st.b
	switch plan.Kind {
	case KindTime:
		t := rv.Interface().(time.Time)
		if w.st.cfg.Dates == DateUnixMilli {
			w.setScalar(b.Number(float64(t.UnixMilli())))
		} else {
			w.setScalar(b.String(t.Format(time.RFC3339Nano)))
		}
	case KindURL:
		u := rv.Interface().(url.URL)
		w.setScalar(b.String(u.String()))
	case KindUUID:
		w.setScalar(b.String(rv.Interface().(uuid.UUID).String()))
	case KindBytes:
		w.setScalar(b.String(base64.StdEncoding.EncodeToString(rv.Bytes())))
	case KindText:
		text, err := rv.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return errors.DataCorrupted(errors.PhaseEncode, w.CodingPath(), rv.Type().String(), err)
		}
		w.setScalar(b.String(string(text)))
	}
	return nil
}

func (r *Reader) decodeBridge(plan *Plan, target reflect.Value) error {
	if plan.Kind == KindTime && r.st.cfg.Dates == DateUnixMilli {
		ms, err := r.number(target.Type())
		if err != nil {
			return err
		}
		if !numeric.IsIntegral(ms) {
			return errors.New(errors.PhaseDecode, errors.KindDataCorrupted).
				Path(r.CodingPath()...).
				Expected("time.Time").
				Value(ms).
				Detail("invalid date").
				Build()
		}
		n, ok := numeric.IntFromFloat(ms, 64)
		if !ok {
			return errors.NumericOverflow(errors.PhaseDecode, r.CodingPath(), ms, "time.Time")
		}
		target.Set(reflect.ValueOf(time.UnixMilli(n).UTC()))
		return nil
	}

	if k := r.Kind(); k != value.KindString {
		return r.mismatch(value.KindString, target.Type())
	}
	s := r.st.b.AsString(r.node)
	corrupted := func(err error) error {
		return errors.DataCorrupted(errors.PhaseDecode, r.CodingPath(), target.Type().String(), err)
	}

	switch plan.Kind {
	case KindTime:
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return corrupted(err)
		}
		target.Set(reflect.ValueOf(t))
	case KindURL:
		u, err := url.Parse(s)
		if err != nil {
			return corrupted(err)
		}
		target.Set(reflect.ValueOf(*u))
	case KindUUID:
		id, err := uuid.Parse(s)
		if err != nil {
			return corrupted(err)
		}
		target.Set(reflect.ValueOf(id))
	case KindBytes:
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return corrupted(err)
		}
		target.SetBytes(raw)
	case KindText:
		if err := unmarshalText(target, s); err != nil {
			return corrupted(err)
		}
	}
	return nil
}

func unmarshalText(target reflect.Value, s string) error {
	return target.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s))
}
