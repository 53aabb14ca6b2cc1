// Package hostlink is the host side of the fixture link: it writes command
// documents to the device's serial port and reads back its one-line replies.
package hostlink

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"sync"

	"fixturecode-go/errcode"
	"fixturecode-go/types"
)

// reply is the union of everything the device sends.
type reply struct {
	Status  *string `json:"status"`
	Success *bool   `json:"success"`
	Error   *string `json:"error"`
}

// Client talks to one device. It is safe for concurrent use; requests are
// serialised because replies carry no correlation id.
type Client struct {
	mu sync.Mutex
	w  io.Writer
	r  *bufio.Reader

	// Skipped counts lines that were not replies (boot noise, logs).
	Skipped int
}

func NewClient(rw io.ReadWriter) *Client {
	return &Client{w: rw, r: bufio.NewReader(rw)}
}

// WaitReady reads until the device announces itself after its self-test.
func (c *Client) WaitReady() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for {
		rep, err := c.readReply()
		if err != nil {
			return err
		}
		if rep.Status != nil && *rep.Status == types.StatusReady {
			return nil
		}
		c.Skipped++
	}
}

// Send writes cmd and waits for its acknowledgement.
func (c *Client) Send(cmd types.Command) error {
	b, err := json.Marshal(cmd)
	if err != nil {
		return &errcode.E{C: errcode.Error, Op: "hostlink.send", Err: err}
	}
	return c.SendRaw(b)
}

// SetRGB converts an RGB colour and sends it to the fixtures in mask.
func (c *Client) SetRGB(mask types.FixtureMask, r, g, b uint8) error {
	return c.Send(types.Command{LED: mask, Color: RGBToRGBW(r, g, b)})
}

// SendRaw writes one document verbatim, terminated by a line break, and
// waits for the reply. An error reply comes back as errcode.DeviceError
// carrying the device's message.
func (c *Client) SendRaw(doc []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	line := append(bytes.TrimSpace(doc), '\n')
	if _, err := c.w.Write(line); err != nil {
		return &errcode.E{C: errcode.Error, Op: "hostlink.write", Err: err}
	}
	for {
		rep, err := c.readReply()
		if err != nil {
			return err
		}
		switch {
		case rep.Success != nil && *rep.Success:
			return nil
		case rep.Error != nil:
			return &errcode.E{C: errcode.DeviceError, Op: "hostlink.send", Msg: *rep.Error}
		}
		// A ready status here means the device rebooted; keep waiting for
		// the reply to this request.
		c.Skipped++
	}
}

// readReply returns the next line that parses as a JSON object.
func (c *Client) readReply() (reply, error) {
	for {
		line, err := c.r.ReadBytes('\n')
		line = bytes.TrimSpace(line)
		if len(line) > 0 && line[0] == '{' {
			var rep reply
			if jerr := json.Unmarshal(line, &rep); jerr == nil {
				return rep, nil
			}
		}
		if err != nil {
			if err == io.EOF {
				return reply{}, &errcode.E{C: errcode.Timeout, Op: "hostlink.read", Msg: "no reply", Err: err}
			}
			return reply{}, &errcode.E{C: errcode.Error, Op: "hostlink.read", Err: err}
		}
		if len(line) > 0 {
			c.Skipped++
		}
	}
}
