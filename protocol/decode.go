package protocol

import (
	"bytes"
	"encoding/json"

	"fixturecode-go/errcode"
	"fixturecode-go/types"
)

// DecodeCommand extracts led, r, g, b and w from a validated document.
// Missing, non-numeric or out-of-range fields read as 0; fractional values
// in range are truncated. A document that is not an object yields the zero
// Command, which drives nothing.
func DecodeCommand(doc []byte) (types.Command, error) {
	var cmd types.Command
	doc = bytes.TrimSpace(doc)
	if len(doc) == 0 {
		return cmd, &errcode.E{C: errcode.EmptyInput, Op: "decode_command", Msg: "no document"}
	}
	if doc[0] != '{' {
		return cmd, nil
	}

	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return cmd, &errcode.E{C: errcode.InvalidInput, Op: "decode_command", Msg: err.Error(), Err: err}
	}

	cmd.LED = types.FixtureMask(asUint8(fields["led"]))
	cmd.R = asUint8(fields["r"])
	cmd.G = asUint8(fields["g"])
	cmd.B = asUint8(fields["b"])
	cmd.W = asUint8(fields["w"])
	return cmd, nil
}

func asUint8(v any) uint8 {
	n, ok := v.(json.Number)
	if !ok {
		return 0
	}
	if i, err := n.Int64(); err == nil {
		if i < 0 || i > 255 {
			return 0
		}
		return uint8(i)
	}
	f, err := n.Float64()
	if err != nil || f < 0 || f > 255 {
		return 0
	}
	return uint8(f)
}
