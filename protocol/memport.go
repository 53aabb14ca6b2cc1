package protocol

import (
	"bytes"
	"strings"
	"sync"

	"fixturecode-go/errcode"
)

// MemPort is an in-memory Port: bytes fed in are read back out, and
// writes are collected for inspection.
type MemPort struct {
	mu  sync.Mutex
	in  []byte
	out bytes.Buffer
}

func NewMemPort() *MemPort { return &MemPort{} }

// Feed queues s for reading.
func (m *MemPort) Feed(s string) {
	m.mu.Lock()
	m.in = append(m.in, s...)
	m.mu.Unlock()
}

func (m *MemPort) Buffered() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.in)
}

func (m *MemPort) ReadByte() (byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.in) == 0 {
		return 0, errcode.IncompleteInput
	}
	b := m.in[0]
	m.in = m.in[1:]
	return b, nil
}

func (m *MemPort) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.out.Write(p)
}

// Output returns everything written so far.
func (m *MemPort) Output() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.out.String()
}

// Lines splits the output on LineEnd, dropping the trailing empty piece.
func (m *MemPort) Lines() []string {
	s := strings.TrimSuffix(m.Output(), LineEnd)
	if s == "" {
		return nil
	}
	return strings.Split(s, LineEnd)
}
