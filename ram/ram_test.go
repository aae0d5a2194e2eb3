package ram

import (
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRam(t *testing.T) {
	assert := assert.New(t)

	r := NewRam()
	assert.Equal(RAM_SIZE, len(r.Cell))
	for _, value := range r.Cell {
		if value != 0 {
			t.Fatal("ram not zeroed")
		}
	}
}

func TestRam_Wrap(t *testing.T) {
	assert := assert.New(t)

	r := NewRam()

	r.Write(RAM_SIZE+5, 0xbeef)
	assert.Equal(uint16(0xbeef), r.Read(5))
	assert.Equal(uint16(0xbeef), r.Read(RAM_SIZE+5))
	assert.Equal(uint16(0xbeef), r.Cell[5])

	r.Write(0xffff, 7)
	assert.Equal(uint16(7), r.Read(ADDRESS_MASK))
	assert.Equal(2, r.Writes)
}

func TestRam_Load(t *testing.T) {
	assert := assert.New(t)

	r := NewRam()
	r.Write(10, 99)
	r.Load([]uint16{1, 2, 3})

	assert.Equal(uint16(1), r.Read(0))
	assert.Equal(uint16(2), r.Read(1))
	assert.Equal(uint16(3), r.Read(2))
	assert.Equal(uint16(99), r.Read(10))

	// Oversized images wrap onto themselves.
	image := make([]uint16, RAM_SIZE+2)
	image[RAM_SIZE] = 0x1111
	image[RAM_SIZE+1] = 0x2222
	r.Load(image)
	assert.Equal(uint16(0x1111), r.Read(0))
	assert.Equal(uint16(0x2222), r.Read(1))
}

func TestRam_Reset(t *testing.T) {
	assert := assert.New(t)

	r := NewRam()
	r.Write(1234, 5)
	r.Reset()

	assert.Equal(uint16(0), r.Read(1234))
	assert.Equal(0, r.Writes)
}

func TestRam_Range(t *testing.T) {
	assert := assert.New(t)

	r := NewRam()
	r.Load([]uint16{4, 5, 6, 7})

	assert.Equal(map[uint16]uint16{1: 5, 2: 6}, maps.Collect(r.Range(1, 2)))
	assert.Equal(map[uint16]uint16{3: 7}, maps.Collect(r.Range(3, 3)))
	assert.Empty(maps.Collect(r.Range(3, 2)))
	assert.Equal(map[uint16]uint16{0: 4}, maps.Collect(r.Range(RAM_SIZE, RAM_SIZE)))
}

func TestRam_Dump(t *testing.T) {
	assert := assert.New(t)

	r := NewRam()
	r.Write(0, 1)
	r.Write(4, 0xffff)
	r.Write(5, 0xffff)

	out := &strings.Builder{}
	err := r.Dump(out, 0, 7)
	assert.NoError(err)

	expected := []string{
		"00000:     1 0x0001",
		"00001-00003: 0 (x3)",
		"00004: 65535 0xffff",
		"00005: 65535 0xffff",
		"00006-00007: 0 (x2)",
		"",
	}
	assert.Equal(strings.Join(expected, "\n"), out.String())

	out.Reset()
	err = r.Dump(out, 1, 1)
	assert.NoError(err)
	assert.Equal("00001:     0 0x0000\n", out.String())
}
