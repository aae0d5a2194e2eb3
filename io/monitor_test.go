package io

import (
	"bytes"
	"iter"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/bbvm/ram"
)

type recordDevice struct {
	payloads []uint16
	rewound  int
}

func (rd *recordDevice) Rewind() {
	rd.rewound++
}

func (rd *recordDevice) Service(payload uint16, mem ram.Reader) error {
	rd.payloads = append(rd.payloads, payload)
	return nil
}

func (rd *recordDevice) Defines() iter.Seq2[string, string] {
	return maps.All(map[string]string{})
}

func TestMonitor_Trap(t *testing.T) {
	assert := assert.New(t)

	mem := ram.NewRam()
	loadString(mem, 2001, []uint16{'O', 'K', 0})

	out := &bytes.Buffer{}
	rec := &recordDevice{}

	mon := &Monitor{}
	mon.Attach(TRAP_PRINT, &Console{Output: out})
	mon.Attach(7, rec)

	mon.Trap(TRAP_PRINT, 2001, mem)
	assert.Equal("OK", out.String())

	mon.Trap(7, 1234, mem)
	assert.Equal([]uint16{1234}, rec.payloads)

	// Unknown codes are ignored.
	mon.Trap(99, 2001, mem)
	assert.Equal("OK", out.String())

	assert.Equal(2, mon.Serviced)
	assert.Equal(1, mon.Unhandled)
	assert.Equal(0, mon.Failed)

	mon.Rewind()
	assert.Equal(1, rec.rewound)
	assert.Equal(0, mon.Serviced)
	assert.Equal(0, mon.Unhandled)
}

func TestMonitor_Failed(t *testing.T) {
	assert := assert.New(t)

	mem := ram.NewRam()
	loadString(mem, 2001, []uint16{0xdfff, 0})

	mon := &Monitor{Verbose: true}
	mon.Attach(TRAP_PRINT, &Console{})

	mon.Trap(TRAP_PRINT, 2001, mem)
	assert.Equal(1, mon.Serviced)
	assert.Equal(1, mon.Failed)
}

func TestMonitor_Attach(t *testing.T) {
	assert := assert.New(t)

	mon := &Monitor{}

	_, err := mon.Device(TRAP_PRINT)
	assert.ErrorIs(err, ErrDeviceMissing)

	cn := &Console{}
	mon.Attach(TRAP_PRINT, cn)
	dev, err := mon.Device(TRAP_PRINT)
	assert.NoError(err)
	assert.Same(cn, dev)

	mon.Attach(TRAP_PRINT, nil)
	_, err = mon.Device(TRAP_PRINT)
	assert.ErrorIs(err, ErrDeviceMissing)
}

func TestPayload(t *testing.T) {
	assert := assert.New(t)

	mem := ram.NewRam()
	loadString(mem, 100, []uint16{3, 2, 1, 0, 9})

	var values []uint16
	var addrs []uint16
	for addr, value := range Payload(100, mem) {
		addrs = append(addrs, addr)
		values = append(values, value)
	}
	assert.Equal([]uint16{100, 101, 102}, addrs)
	assert.Equal([]uint16{3, 2, 1}, values)

	var count int
	for range Payload(103, mem) {
		count++
	}
	assert.Equal(0, count)
}
