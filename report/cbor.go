package report

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEnc uses RFC 8949 core deterministic encoding so equal reports
// encode to equal bytes. Timestamps are kept as RFC 3339 text to
// preserve nanoseconds.
var cborEnc = func() cbor.EncMode {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	em, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return em
}()

func EncodeCBOR(r Report) ([]byte, error) {
	buf, err := cborEnc.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("report: encode cbor: %w", err)
	}
	return buf, nil
}

func DecodeCBOR(b []byte) (Report, error) {
	var r Report
	if err := cbor.Unmarshal(b, &r); err != nil {
		return Report{}, fmt.Errorf("report: decode cbor: %w", err)
	}
	return r, nil
}
