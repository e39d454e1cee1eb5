package envcheck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheck_Run(t *testing.T) {
	t.Parallel()

	t.Run("Passes when DJANGO_ENV is TESTING", func(t *testing.T) {
		t.Parallel()

		snap := FromMap(map[string]string{"DJANGO_ENV": "TESTING"})

		res, err := DefaultCheck.Run(snap)
		require.NoError(t, err)
		require.True(t, res.Passed)
		require.True(t, res.Present)
		require.Equal(t, "TESTING", res.Observed)
	})

	t.Run("Fails on different case", func(t *testing.T) {
		t.Parallel()

		snap := FromMap(map[string]string{"DJANGO_ENV": "testing"})

		res, err := DefaultCheck.Run(snap)
		require.Error(t, err)
		require.ErrorIs(t, err, ErrAssertionMismatch)
		require.False(t, res.Passed)

		var aerr *AssertionError
		require.True(t, errors.As(err, &aerr))
		require.Equal(t, "DJANGO_ENV", aerr.Key)
		require.Equal(t, "TESTING", aerr.Expected)
		require.Equal(t, "testing", aerr.Observed)
		require.True(t, aerr.Present)
		require.Equal(t, CodeAssertionMismatch, aerr.Code)
	})

	t.Run("Fails when DJANGO_ENV is missing", func(t *testing.T) {
		t.Parallel()

		snap := FromMap(map[string]string{"DEBUG": "true"})

		res, err := DefaultCheck.Run(snap)
		require.ErrorIs(t, err, ErrAssertionMismatch)
		require.False(t, res.Present)
		require.Contains(t, err.Error(), "DJANGO_ENV is not set")
	})

	t.Run("Does not trim whitespace", func(t *testing.T) {
		t.Parallel()

		snap := FromMap(map[string]string{"DJANGO_ENV": " TESTING "})

		_, err := DefaultCheck.Run(snap)
		require.ErrorIs(t, err, ErrAssertionMismatch)
	})

	t.Run("Absent never matches an empty expectation", func(t *testing.T) {
		t.Parallel()

		check := Check{Key: "UNSET_VAR", Expected: ""}

		_, err := check.Run(Snapshot{})
		require.ErrorIs(t, err, ErrAssertionMismatch)

		_, err = check.Run(FromMap(map[string]string{"UNSET_VAR": ""}))
		require.NoError(t, err)
	})

	t.Run("Rejects an empty key", func(t *testing.T) {
		t.Parallel()

		_, err := Check{Expected: "TESTING"}.Run(Snapshot{})
		require.ErrorIs(t, err, ErrEmptyKey)
		require.NotErrorIs(t, err, ErrAssertionMismatch)
	})
}

func TestCheck_Idempotent(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"TESTING", "testing"} {
		snap := FromMap(map[string]string{"DJANGO_ENV": value, "OTHER": "x"})
		keysBefore := snap.Keys()

		first, firstErr := DefaultCheck.Run(snap)
		second, secondErr := DefaultCheck.Run(snap)

		require.Equal(t, first, second)
		require.Equal(t, firstErr == nil, secondErr == nil)
		require.Equal(t, keysBefore, snap.Keys())

		observed, ok := snap.Lookup("DJANGO_ENV")
		require.True(t, ok)
		require.Equal(t, value, observed)
	}
}

// The corpus carried a copy of this check that compared two literals instead
// of reading the environment. That comparison can never pass.
func TestCompare_LiteralRegression(t *testing.T) {
	t.Parallel()

	value := "not Testing"
	expected := "TESTING"

	err := Compare(value, true, expected)
	require.ErrorIs(t, err, ErrAssertionMismatch)
	require.Contains(t, err.Error(), `"not Testing"`)
}

func TestCompare(t *testing.T) {
	t.Parallel()

	require.NoError(t, Compare("TESTING", true, "TESTING"))
	require.Error(t, Compare("TESTING", false, "TESTING"))
	require.Error(t, Compare("Testing", true, "TESTING"))
	require.Error(t, Compare("", true, "TESTING"))
}
