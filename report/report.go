// Package report renders harness results as a table or encodes them as
// JSON, CBOR or MessagePack.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/synadia-labs/wrapcost/harness"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat error = errors.New("report: unknown format")

// Report is a titled set of results plus the environment they were
// measured in.
type Report struct {
	Title     string           `json:"title" cbor:"title"`
	Timestamp time.Time        `json:"timestamp" cbor:"timestamp"`
	GoVersion string           `json:"go_version" cbor:"go_version"`
	GOOS      string           `json:"goos" cbor:"goos"`
	GOARCH    string           `json:"goarch" cbor:"goarch"`
	Results   []harness.Result `json:"results" cbor:"results"`
}

// New stamps results with the current time and runtime.
func New(title string, results []harness.Result) Report {
	return Report{
		Title:     title,
		Timestamp: time.Now().UTC(),
		GoVersion: runtime.Version(),
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
		Results:   results,
	}
}

type Format string

const (
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatCBOR    Format = "cbor"
	FormatMsgpack Format = "msgpack"
)

// Formats lists every supported output format.
var Formats = []Format{FormatTable, FormatJSON, FormatCBOR, FormatMsgpack}

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Write renders r to w in format f.
func Write(w io.Writer, r Report, f Format) error {
	var (
		buf []byte
		err error
	)
	switch f {
	case FormatTable:
		return WriteTable(w, r)
	case FormatJSON:
		buf, err = EncodeJSON(r)
	case FormatCBOR:
		buf, err = EncodeCBOR(r)
	case FormatMsgpack:
		buf = AppendMsgpack(nil, r)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// WriteTable prints r as an aligned table, one row per result.
func WriteTable(w io.Writer, r Report) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "# %s\n", r.Title)
	fmt.Fprintf(tw, "# %s %s/%s, %s\n\n", r.GoVersion, r.GOOS, r.GOARCH, r.Timestamp.Format(time.RFC3339))
	fmt.Fprintln(tw, "Variant\tSeed\tRound\tSteps\tN\tns/op\tallocs/op\tB/op")
	for _, res := range r.Results {
		seed := "-"
		if res.Seed > 0 {
			seed = fmt.Sprint(res.Seed)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.2f\t%.2f\t%.0f\n",
			res.Variant, seed, res.Round, res.Steps, res.N, res.NsPerOp, res.AllocsPerOp, res.BytesPerOp)
	}
	return tw.Flush()
}

func EncodeJSON(r Report) ([]byte, error) {
	buf, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("report: encode json: %w", err)
	}
	return append(buf, '\n'), nil
}

func DecodeJSON(b []byte) (Report, error) {
	var r Report
	if err := json.Unmarshal(b, &r); err != nil {
		return Report{}, fmt.Errorf("report: decode json: %w", err)
	}
	return r, nil
}
