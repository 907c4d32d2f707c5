package gcerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_GameMessage(t *testing.T) {
	base := errors.New("boom")

	testCases := []struct {
		name   string
		input  error
		expect string
	}{
		{
			name:   "nil",
			input:  nil,
			expect: "",
		},
		{
			name:   "plain error",
			input:  base,
			expect: "boom",
		},
		{
			name:   "player error",
			input:  Player("You see nothing there to open.", ""),
			expect: "You see nothing there to open.",
		},
		{
			name:   "formatted",
			input:  Playerf("You have no %s you can %s.", "potions", "quaff"),
			expect: "You have no potions you can quaff.",
		},
		{
			name:   "wrapped by fmt",
			input:  fmt.Errorf("dispatch: %w", Wrap(base, "You stop.", "")),
			expect: "You stop.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := GameMessage(tc.input)

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Wrap_KeepsCause(t *testing.T) {
	assert := assert.New(t)
	cause := errors.New("cancelled")

	err := Wrapf(cause, "You have nothing to %s.", "wield")

	assert.ErrorIs(err, cause)
	assert.True(HasGameMessage(err))
	assert.Contains(err.Error(), "cancelled")
	assert.False(HasGameMessage(cause))
}
