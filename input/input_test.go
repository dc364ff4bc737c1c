package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeys map[int]bool

func (f fakeKeys) IsKeyPressed(key int) bool { return f[key] }

func TestPollDefaultBindings(t *testing.T) {
	s := Poll(fakeKeys{KeyW: true, KeySpace: true}, DefaultBindings())

	assert.True(t, s.Down(Forward))
	assert.True(t, s.Down(Up))
	assert.False(t, s.Down(Back))
	assert.False(t, s.Down(Quit))
}

func TestPollAnyBoundKey(t *testing.T) {
	b := Bindings{Forward: {KeyW, KeyUp}}
	assert.True(t, Poll(fakeKeys{KeyUp: true}, b).Down(Forward))
	assert.False(t, Poll(fakeKeys{KeyDown: true}, b).Down(Forward))
}

func TestStateAxis(t *testing.T) {
	var s State
	assert.Equal(t, float32(0), s.Axis(Back, Forward))
	assert.Equal(t, float32(1), s.With(Forward).Axis(Back, Forward))
	assert.Equal(t, float32(-1), s.With(Back).Axis(Back, Forward))
	assert.Equal(t, float32(0), s.With(Forward, Back).Axis(Back, Forward))
}

func TestStateIsValue(t *testing.T) {
	var s State
	held := s.With(Quit)
	assert.False(t, s.Down(Quit))
	assert.True(t, held.Down(Quit))
	assert.False(t, held.Down(Action(99)))
}

func TestParseAction(t *testing.T) {
	for a := Forward; a < actionCount; a++ {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := ParseAction("jump")
	assert.Error(t, err)
}

func TestKeyByName(t *testing.T) {
	cases := map[string]int{"w": KeyW, "Space": KeySpace, " escape ": KeyEscape, "x": KeyX, "9": Key9, "Z": KeyZ}
	for name, want := range cases {
		got, ok := KeyByName(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	_, ok := KeyByName("hyper")
	assert.False(t, ok)
}

func TestKeyNameRoundTrip(t *testing.T) {
	for _, code := range []int{KeyW, KeySpace, KeyEscape, Key0, KeyLeftShift} {
		name, ok := KeyName(code)
		require.True(t, ok)
		got, ok := KeyByName(name)
		require.True(t, ok)
		assert.Equal(t, code, got)
	}
	_, ok := KeyName(-1)
	assert.False(t, ok)
}
