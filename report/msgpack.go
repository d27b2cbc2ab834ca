package report

import (
	"fmt"

	"github.com/tinylib/msgp/msgp"

	"github.com/synadia-labs/wrapcost/harness"
)

// The MessagePack form is a map keyed like the JSON form. Unknown keys
// are skipped on decode.

// AppendMsgpack appends the MessagePack encoding of r to b.
func AppendMsgpack(b []byte, r Report) []byte {
	b = msgp.AppendMapHeader(b, 6)
	b = msgp.AppendString(b, "title")
	b = msgp.AppendString(b, r.Title)
	b = msgp.AppendString(b, "timestamp")
	b = msgp.AppendTime(b, r.Timestamp)
	b = msgp.AppendString(b, "go_version")
	b = msgp.AppendString(b, r.GoVersion)
	b = msgp.AppendString(b, "goos")
	b = msgp.AppendString(b, r.GOOS)
	b = msgp.AppendString(b, "goarch")
	b = msgp.AppendString(b, r.GOARCH)
	b = msgp.AppendString(b, "results")
	b = msgp.AppendArrayHeader(b, uint32(len(r.Results)))
	for _, res := range r.Results {
		b = appendResult(b, res)
	}
	return b
}

func appendResult(b []byte, res harness.Result) []byte {
	b = msgp.AppendMapHeader(b, 8)
	b = msgp.AppendString(b, "variant")
	b = msgp.AppendString(b, res.Variant)
	b = msgp.AppendString(b, "seed")
	b = msgp.AppendInt64(b, res.Seed)
	b = msgp.AppendString(b, "round")
	b = msgp.AppendInt(b, res.Round)
	b = msgp.AppendString(b, "steps")
	b = msgp.AppendInt(b, res.Steps)
	b = msgp.AppendString(b, "n")
	b = msgp.AppendInt(b, res.N)
	b = msgp.AppendString(b, "ns_per_op")
	b = msgp.AppendFloat64(b, res.NsPerOp)
	b = msgp.AppendString(b, "allocs_per_op")
	b = msgp.AppendFloat64(b, res.AllocsPerOp)
	b = msgp.AppendString(b, "bytes_per_op")
	b = msgp.AppendFloat64(b, res.BytesPerOp)
	return b
}

// DecodeMsgpack decodes a report written by AppendMsgpack.
func DecodeMsgpack(b []byte) (Report, error) {
	var r Report
	rest, err := readReport(b, &r)
	if err != nil {
		return Report{}, fmt.Errorf("report: decode msgpack: %w", err)
	}
	if len(rest) != 0 {
		return Report{}, fmt.Errorf("report: decode msgpack: %d trailing bytes", len(rest))
	}
	return r, nil
}

func readReport(b []byte, r *Report) ([]byte, error) {
	sz, b, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return b, err
	}
	for range sz {
		var key string
		key, b, err = msgp.ReadStringBytes(b)
		if err != nil {
			return b, err
		}
		switch key {
		case "title":
			r.Title, b, err = msgp.ReadStringBytes(b)
		case "timestamp":
			r.Timestamp, b, err = msgp.ReadTimeBytes(b)
		case "go_version":
			r.GoVersion, b, err = msgp.ReadStringBytes(b)
		case "goos":
			r.GOOS, b, err = msgp.ReadStringBytes(b)
		case "goarch":
			r.GOARCH, b, err = msgp.ReadStringBytes(b)
		case "results":
			var n uint32
			n, b, err = msgp.ReadArrayHeaderBytes(b)
			if err != nil {
				return b, err
			}
			r.Results = make([]harness.Result, n)
			for i := range r.Results {
				if b, err = readResult(b, &r.Results[i]); err != nil {
					return b, err
				}
			}
		default:
			b, err = msgp.Skip(b)
		}
		if err != nil {
			return b, fmt.Errorf("field %q: %w", key, err)
		}
	}
	return b, nil
}

func readResult(b []byte, res *harness.Result) ([]byte, error) {
	sz, b, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return b, err
	}
	for range sz {
		var key string
		key, b, err = msgp.ReadStringBytes(b)
		if err != nil {
			return b, err
		}
		switch key {
		case "variant":
			res.Variant, b, err = msgp.ReadStringBytes(b)
		case "seed":
			res.Seed, b, err = msgp.ReadInt64Bytes(b)
		case "round":
			res.Round, b, err = msgp.ReadIntBytes(b)
		case "steps":
			res.Steps, b, err = msgp.ReadIntBytes(b)
		case "n":
			res.N, b, err = msgp.ReadIntBytes(b)
		case "ns_per_op":
			res.NsPerOp, b, err = msgp.ReadFloat64Bytes(b)
		case "allocs_per_op":
			res.AllocsPerOp, b, err = msgp.ReadFloat64Bytes(b)
		case "bytes_per_op":
			res.BytesPerOp, b, err = msgp.ReadFloat64Bytes(b)
		default:
			b, err = msgp.Skip(b)
		}
		if err != nil {
			return b, fmt.Errorf("result field %q: %w", key, err)
		}
	}
	return b, nil
}
