package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateNormalizesInput(t *testing.T) {
	s := NewState([]string{"  a.png", "maps\\cave.jpg", "   ", "b.png"}, " backdrop.png ", 1)

	require.Equal(t, []string{"a.png", "maps/cave.jpg", "b.png"}, s.Images)
	assert.Equal(t, 1, s.Index)
	assert.Equal(t, "backdrop.png", s.Background)
}

func TestNewStateIndexOutOfRange(t *testing.T) {
	testCases := []struct {
		name  string
		index int
		want  int
	}{
		{"negative resets", -1, 0},
		{"past the end resets", 5, 0},
		{"last is kept", 2, 2},
		{"first is kept", 0, 0},
	}
	images := []string{"a.png", "b.png", "c.png"}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewState(images, "", tc.index)
			assert.Equal(t, tc.want, s.Index)
		})
	}
}

func TestAdvanceWrapsBothWays(t *testing.T) {
	s := NewState([]string{"a.png", "b.png", "c.png"}, "", 0)

	require.True(t, s.Advance(1))
	assert.Equal(t, 1, s.Index)

	require.True(t, s.Advance(2))
	assert.Equal(t, 0, s.Index, "forward past the end wraps to the start")

	require.True(t, s.Advance(-1))
	assert.Equal(t, 2, s.Index, "backward past the start wraps to the end")

	require.True(t, s.Advance(-5))
	assert.Equal(t, 0, s.Index, "steps larger than the list still land in range")
}

func TestAdvanceRepeatedStepsLandOnModulo(t *testing.T) {
	const length = 5
	images := []string{"0.png", "1.png", "2.png", "3.png", "4.png"}

	for start := 0; start < length; start++ {
		s := NewState(images, "", start)
		for n := 1; n <= 3*length; n++ {
			s.Advance(1)
			require.Equal(t, (start+n)%length, s.Index, "start %d, %d steps", start, n)
		}
	}
}

func TestAdvanceFullCycleIsNoop(t *testing.T) {
	s := NewState([]string{"a.png", "b.png", "c.png"}, "", 1)

	assert.False(t, s.Advance(3), "a whole lap lands on the same image")
	assert.False(t, s.Advance(0))
	assert.Equal(t, 1, s.Index)
}

func TestAdvanceEmptyList(t *testing.T) {
	s := &State{}
	assert.False(t, s.Advance(1))
	assert.Equal(t, 0, s.Index)
}

func TestJumpToClampsAndReportsChange(t *testing.T) {
	s := NewState([]string{"a.png", "b.png", "c.png"}, "", 2)

	assert.True(t, s.JumpTo(1))
	assert.Equal(t, 1, s.Index)

	assert.False(t, s.JumpTo(1), "jumping to the current index is a no-op")

	assert.True(t, s.JumpTo(99), "out of range resets to the first image")
	assert.Equal(t, 0, s.Index)

	assert.False(t, s.JumpTo(-3), "already at 0, the reset changes nothing")
}

func TestSetBackground(t *testing.T) {
	s := NewState([]string{"a.png"}, "old.png", 0)

	assert.True(t, s.SetBackground("new.png"))
	assert.Equal(t, "new.png", s.Background)

	assert.False(t, s.SetBackground(" new.png "), "normalized same value is a no-op")

	assert.True(t, s.SetBackground(""), "blank clears the backdrop")
	assert.Equal(t, "", s.Background)

	assert.False(t, s.SetBackground("   "))
}

func TestApplySparseUpdate(t *testing.T) {
	background := "cave.png"
	index := 1

	s := NewState([]string{"a.png", "b.png"}, "", 0)

	assert.True(t, s.Apply(Update{Background: &background}))
	assert.Equal(t, "cave.png", s.Background)
	assert.Equal(t, 0, s.Index, "absent index field leaves the position alone")

	assert.True(t, s.Apply(Update{Index: &index}))
	assert.Equal(t, 1, s.Index)
	assert.Equal(t, "cave.png", s.Background, "absent background field leaves the backdrop alone")

	assert.False(t, s.Apply(Update{}), "an empty update changes nothing")
}

func TestApplyExplicitBackgroundClear(t *testing.T) {
	clear := ""
	s := NewState([]string{"a.png"}, "cave.png", 0)

	assert.True(t, s.Apply(Update{Background: &clear}))
	assert.Equal(t, "", s.Background)
}

func TestApplyReclampsAgainstCurrentList(t *testing.T) {
	tooFar := 7
	s := NewState([]string{"a.png", "b.png"}, "", 1)

	assert.True(t, s.Apply(Update{Index: &tooFar}))
	assert.Equal(t, 0, s.Index)
}
