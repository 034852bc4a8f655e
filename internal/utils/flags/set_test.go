package flags

import (
	"errors"
	"testing"

	"github.com/charopevez/eob-dbinit/internal/utils/test/assert"
)

func TestStringSet(t *testing.T) {
	t.Run("Should have a set type", func(t *testing.T) {
		var values []string
		assert.Equal(t, "Set", newStringSet(&values, nil).Type())
	})

	t.Run("Should initially print an empty array", func(t *testing.T) {
		var values []string
		assert.Equal(t, "[]", newStringSet(&values, nil).String())
	})

	t.Run("Should print the set values as an array", func(t *testing.T) {
		values := []string{"SCRAM-SHA-1", "SCRAM-SHA-256"}
		assert.Equal(t, "[SCRAM-SHA-1,SCRAM-SHA-256]", newStringSet(&values, nil).String())
	})

	for _, tc := range []struct {
		description string
		val         string
		values      []string
	}{
		{
			description: "set no values from an empty string",
		},
		{
			description: "set values and omit any duplicates",
			val:         "one,two,one",
			values:      []string{"one", "two"},
		},
		{
			description: "set values written with quotes",
			val:         `one,two,"four,five"`,
			values:      []string{"four,five", "one", "two"},
		},
	} {
		t.Run("With no valid values should "+tc.description, func(t *testing.T) {
			var values []string
			set := newStringSet(&values, nil)

			assert.Nil(t, set.Set(tc.val))
			assert.Equal(t, tc.values, values)
		})
	}

	validValues := []string{"SCRAM-SHA-1", "SCRAM-SHA-256"}

	for _, tc := range []struct {
		description string
		val         string
		err         error
		values      []string
	}{
		{
			description: "set valid values and omit any duplicates",
			val:         "SCRAM-SHA-256,SCRAM-SHA-1,SCRAM-SHA-256",
			values:      []string{"SCRAM-SHA-1", "SCRAM-SHA-256"},
		},
		{
			description: "error if any value is not valid",
			val:         "SCRAM-SHA-1,MONGODB-CR",
			err:         errors.New("'MONGODB-CR' is an unsupported value, try instead one of ['SCRAM-SHA-1', 'SCRAM-SHA-256']"),
		},
	} {
		t.Run("With valid values should "+tc.description, func(t *testing.T) {
			var values []string
			set := newStringSet(&values, validValues)

			assert.Equal(t, tc.err, set.Set(tc.val))
			assert.Equal(t, tc.values, values)
		})
	}

	t.Run("Should append a value once", func(t *testing.T) {
		var values []string
		set := newStringSet(&values, nil)

		assert.Nil(t, set.Set("one,two"))
		assert.Nil(t, set.Append("two"))
		assert.Nil(t, set.Append("three"))
		assert.Nil(t, set.Append(""))

		assert.Equal(t, []string{"one", "three", "two"}, values)
		assert.Equal(t, values, set.GetSlice())
	})

	t.Run("Should replace the values", func(t *testing.T) {
		var values []string
		set := newStringSet(&values, validValues)

		assert.Nil(t, set.Set("SCRAM-SHA-1"))
		assert.Nil(t, set.Replace([]string{"SCRAM-SHA-256"}))
		assert.Equal(t, []string{"SCRAM-SHA-256"}, values)

		assert.Nil(t, set.Replace(nil))
		assert.Equal(t, []string{}, values)
	})
}
