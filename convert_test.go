package partial_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/partial"
)

// UserPatch is the pointer-field ("every field optional") form of User.
type UserPatch struct {
	Username *string `mapstructure:"username"`
	Age      *int    `mapstructure:"age"`
}

func TestFromRecordExactRoundTrip(t *testing.T) {
	r := partial.FromRecordExact(User{Username: "ann", Age: 31})

	patch := partial.ToRecord[UserPatch](r)
	require.NotNil(t, patch.Username)
	require.NotNil(t, patch.Age)
	assert.Equal(t, "ann", *patch.Username)
	assert.Equal(t, 31, *patch.Age)
}

func TestFromRecordDropsUnknownFields(t *testing.T) {
	type wide struct {
		Username string `mapstructure:"username"`
		Karma    int    `mapstructure:"karma"`
	}

	r := partial.FromRecord[User](wide{Username: "ann", Karma: 9000})

	name, ok := partial.Get[string](r, "username")
	require.True(t, ok)
	assert.Equal(t, "ann", name)

	// "karma" is not part of User; "age" was never supplied.
	assert.False(t, r.Has("age"))
	assert.Equal(t, 1, r.Len())
}

func TestFromRecordTypeMismatchPanics(t *testing.T) {
	type bad struct {
		Username int `mapstructure:"username"`
	}
	assert.Panics(t, func() {
		partial.FromRecord[User](bad{Username: 1})
	})
}

func TestFromRecordNonStructPanics(t *testing.T) {
	assert.Panics(t, func() {
		partial.FromRecord[User]("not a struct")
	})
}

func TestToRecordAbsentFieldsAreNil(t *testing.T) {
	r := partial.Set(partial.Empty[User](), "username", "ann")

	patch := partial.ToRecord[UserPatch](r)
	require.NotNil(t, patch.Username)
	assert.Equal(t, "ann", *patch.Username)
	assert.Nil(t, patch.Age)
}

func TestToRecordWrongShapePanics(t *testing.T) {
	type notPointers struct {
		Username string `mapstructure:"username"`
		Age      *int   `mapstructure:"age"`
	}
	type missingField struct {
		Username *string `mapstructure:"username"`
	}

	r := partial.Empty[User]()
	assert.Panics(t, func() { partial.ToRecord[notPointers](r) })
	assert.Panics(t, func() { partial.ToRecord[missingField](r) })
}

func TestFromMap(t *testing.T) {
	t.Run("Presence Follows Input Keys", func(t *testing.T) {
		r, err := partial.FromMap[User](map[string]any{"username": "ann"})
		require.NoError(t, err)

		name, ok := partial.Get[string](r, "username")
		require.True(t, ok)
		assert.Equal(t, "ann", name)
		assert.False(t, r.Has("age"))
	})

	t.Run("Key Matching Follows The Decoder", func(t *testing.T) {
		// The decoder matches keys case-insensitively; a key it consumed
		// must land as a present field, not silently vanish.
		r, err := partial.FromMap[User](map[string]any{"Username": "ann"})
		require.NoError(t, err)

		name, ok := partial.Get[string](r, "username")
		require.True(t, ok, "decoded key did not become present")
		assert.Equal(t, "ann", name)
	})

	t.Run("Unknown Keys Are Dropped", func(t *testing.T) {
		r, err := partial.FromMap[User](map[string]any{"username": "ann", "karma": 9000})
		require.NoError(t, err)
		assert.Equal(t, 1, r.Len())
	})

	t.Run("Values Are Coerced", func(t *testing.T) {
		type metrics struct {
			Ratio float64 `mapstructure:"ratio"`
		}
		// JSON-ish input: an int feeding a float field.
		r, err := partial.FromMap[metrics](map[string]any{"ratio": 2})
		require.NoError(t, err)

		v, ok := partial.Get[float64](r, "ratio")
		require.True(t, ok)
		assert.Equal(t, 2.0, v)
	})

	t.Run("Malformed Input Is An Error", func(t *testing.T) {
		_, err := partial.FromMap[User](map[string]any{"age": "not a number"})
		assert.Error(t, err)
	})
}

func TestToMapRoundTrip(t *testing.T) {
	r := partial.Set(partial.Empty[User](), "age", 31)

	m := partial.ToMap(r)
	assert.Equal(t, map[string]any{"age": 31}, m)

	back, err := partial.FromMap[User](m)
	require.NoError(t, err)
	assert.True(t, back.Equal(r))
}
