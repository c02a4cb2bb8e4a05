package marc

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroPad_RoundTrip(t *testing.T) {
	for _, x := range []int{0, 1, 9, 10, 99, 100, 1234, 26, 99998, 99999} {
		got := ZeroPad(x, 5)
		require.Len(t, got, 5, "ZeroPad(%d)", x)
		back, err := strconv.Atoi(got)
		require.NoError(t, err)
		assert.Equal(t, x, back)
	}
}

func TestZeroPad_Overflow(t *testing.T) {
	got := ZeroPad(100000, 5)
	assert.Equal(t, "100000", got)
	assert.Len(t, got, 6)
}

func TestLeader(t *testing.T) {
	c := Counts{ControlFields: 1, DataFields: 2, Subfields: 3, ContentLength: 30}

	// 26 + 30 + 13 + 30 + 6
	assert.Equal(t, 105, RecordLength(c))
	// 24 + 3*12 + 1
	assert.Equal(t, 61, BaseAddress(c))

	leader := Leader(c, "a", "m")
	assert.Equal(t, "00105nam a2200061zu 4500", leader)
	assert.Len(t, leader, LeaderLength)
}

func TestLeader_EmptyRecord(t *testing.T) {
	leader := Leader(Counts{}, DefaultTypeOfRecord, LevelComponentPart)
	assert.Equal(t, "00026naa a2200025zu 4500", leader)
}

func TestLeader_Positions(t *testing.T) {
	leader := Leader(Counts{ControlFields: 1, DataFields: 10, Subfields: 25, ContentLength: 800}, "k", "a")
	require.Len(t, leader, LeaderLength)
	assert.Equal(t, "n", leader[5:6])
	assert.Equal(t, "k", leader[6:7])
	assert.Equal(t, "a", leader[7:8])
	assert.Equal(t, " a22", leader[8:12])
	assert.Equal(t, "00157", leader[12:17])
	assert.Equal(t, "zu 4500", leader[17:])
}
