package mempool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeClass(t *testing.T) {
	assert.Equal(t, 4096, sizeClass(1))
	assert.Equal(t, 4096, sizeClass(4096))
	assert.Equal(t, 8192, sizeClass(4097))
	assert.Equal(t, 12288, sizeClass(10000))
}

func TestGetFloat64Length(t *testing.T) {
	buf := GetFloat64(1000)
	assert.Len(t, buf, 1000)
	assert.GreaterOrEqual(t, cap(buf), 4096)
	PutFloat64(buf)
}

func TestFloat64RoundTrip(t *testing.T) {
	buf := GetFloat64(100)
	for i := range buf {
		buf[i] = float64(i)
	}
	PutFloat64(buf)

	// Reacquiring from the same size class must yield the requested length.
	buf2 := GetFloat64(200)
	assert.Len(t, buf2, 200)
	PutFloat64(buf2)
}

func TestGetUint64Zeroed(t *testing.T) {
	buf := GetUint64(500)
	for i := range buf {
		buf[i] = ^uint64(0)
	}
	PutUint64(buf)

	buf2 := GetUint64(500)
	assert.Len(t, buf2, 500)
	for _, v := range buf2 {
		assert.Zero(t, v)
	}
	PutUint64(buf2)
}

func TestPutNilIsNoop(t *testing.T) {
	PutFloat64(nil)
	PutUint64(nil)
}
