package fixture

import "sync"

// Write is one recorded SetChannelIntensity call.
type Write struct {
	Ch Channel
	V  uint8
}

// Memory is an in-memory Output. It backs the host simulator and tests.
type Memory struct {
	mu     sync.Mutex
	levels map[Channel]uint8
	log    []Write
}

func NewMemory() *Memory { return &Memory{levels: make(map[Channel]uint8)} }

func (m *Memory) SetChannelIntensity(ch Channel, v uint8) {
	m.mu.Lock()
	m.levels[ch] = v
	m.log = append(m.log, Write{Ch: ch, V: v})
	m.mu.Unlock()
}

// Level returns the last value written to ch (0 if never written).
func (m *Memory) Level(ch Channel) uint8 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.levels[ch]
}

// Writes returns a copy of the write log.
func (m *Memory) Writes() []Write {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Write(nil), m.log...)
}

// Reset clears the write log but keeps levels.
func (m *Memory) Reset() {
	m.mu.Lock()
	m.log = m.log[:0]
	m.mu.Unlock()
}
