package telemetry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/charopevez/eob-dbinit/internal/utils/test/assert"
)

func TestMode(t *testing.T) {
	for _, tc := range []Mode{
		// add all modes here
		ModeEmpty,
		ModeOff,
		ModeStdout,
	} {
		t.Run(fmt.Sprintf("%q should be valid", tc), func(t *testing.T) {
			assert.True(t, isValidMode(tc), "must be valid mode")
		})
	}

	t.Run("Should have the correct type representation", func(t *testing.T) {
		assert.Equal(t, "string", ModeOff.Type())
	})

	t.Run("Should set its value correctly with a valid mode", func(t *testing.T) {
		var m Mode

		assert.Nil(t, m.Set("stdout"))
		assert.Equal(t, "stdout", m.String())

		assert.Nil(t, m.Set(""))
		assert.Equal(t, "", m.String())
	})

	t.Run("Should return an error when setting its value with an invalid mode", func(t *testing.T) {
		var m Mode
		assert.Equal(t, errors.New("unsupported value, use one of [off, stdout] instead"), m.Set("on"))
	})
}
