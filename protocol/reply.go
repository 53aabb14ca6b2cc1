package protocol

import (
	"encoding/json"
	"io"

	"fixturecode-go/errcode"
	"fixturecode-go/types"
)

// LineEnd terminates every reply.
const LineEnd = "\r\n"

// WriteReply writes v as one compact JSON object followed by LineEnd.
func WriteReply(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return &errcode.E{C: errcode.Error, Op: "write_reply", Err: err}
	}
	b = append(b, LineEnd...)
	_, err = w.Write(b)
	return err
}

// ReplyFor maps a command outcome onto the reply the host expects. Error
// replies start with the code, so hosts can match on the prefix.
func ReplyFor(err error) any {
	if err == nil {
		return types.Success()
	}
	if _, ok := err.(*errcode.E); !ok {
		err = errcode.Of(err)
	}
	return types.Failure(err.Error())
}
