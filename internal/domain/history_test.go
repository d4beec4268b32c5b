package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(seq uint64) Measurement {
	return Measurement{
		SessionID:     "s1",
		FrameSequence: seq,
		Signals:       map[string]float64{"spineAngle": float64(seq)},
	}
}

func TestHistoryBufferFillsToCapacity(t *testing.T) {
	t.Parallel()

	buffer := NewHistoryBuffer(3)
	assert.Equal(t, 0, buffer.Len())

	buffer.Push(frame(1))
	buffer.Push(frame(2))
	require.Equal(t, 2, buffer.Len())

	window := buffer.Window()
	require.Len(t, window, 2)
	assert.Equal(t, uint64(1), window[0].FrameSequence)
	assert.Equal(t, uint64(2), window[1].FrameSequence)
}

func TestHistoryBufferEvictsOldestFirst(t *testing.T) {
	t.Parallel()

	buffer := NewHistoryBuffer(3)
	for seq := uint64(1); seq <= 10; seq++ {
		buffer.Push(frame(seq))
		assert.LessOrEqual(t, buffer.Len(), 3)
	}

	window := buffer.Window()
	require.Len(t, window, 3)
	assert.Equal(t, uint64(8), window[0].FrameSequence)
	assert.Equal(t, uint64(9), window[1].FrameSequence)
	assert.Equal(t, uint64(10), window[2].FrameSequence)
}

func TestHistoryBufferWindowIsACopy(t *testing.T) {
	t.Parallel()

	buffer := NewHistoryBuffer(2)
	buffer.Push(frame(1))

	window := buffer.Window()
	window[0] = frame(99)

	assert.Equal(t, uint64(1), buffer.Window()[0].FrameSequence)
}

func TestHistoryBufferMinimumCapacityIsOne(t *testing.T) {
	t.Parallel()

	buffer := NewHistoryBuffer(0)
	buffer.Push(frame(1))
	buffer.Push(frame(2))

	require.Equal(t, 1, buffer.Len())
	assert.Equal(t, uint64(2), buffer.Window()[0].FrameSequence)
}
