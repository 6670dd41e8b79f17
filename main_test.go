package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupRunsInReverse(t *testing.T) {
	expected := []int{4, 3, 2, 1, 0}
	out := []int{}
	cfs := CleanupFuncs{}
	for i := range 5 {
		cfs.Defer(func() error {
			out = append(out, i)
			return nil
		})
	}

	err := cfs.Cleanup()
	assert.NoError(t, err)

	require.Len(t, out, 5)
	for i := range expected {
		assert.Equal(t, expected[i], out[i])
	}
}

func TestCleanupJoinsErrors(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")

	cfs := CleanupFuncs{}
	cfs.Defer(func() error { return errA })
	cfs.Defer(func() error { return nil })
	cfs.Defer(func() error { return errB })

	err := cfs.Cleanup()
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}
