package detail

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_LoadLifecycle(t *testing.T) {
	fail := true
	m := New(func(_ context.Context, id int) (string, error) {
		if fail {
			return "", errors.New("boom")
		}
		return "post " + string(rune('0'+id)), nil
	})
	assert.False(t, m.IsOpen())
	assert.Equal(t, StateIdle, m.State())

	m, cmd := m.Open(context.Background(), 4)
	require.NotNil(t, cmd)
	assert.Equal(t, StateLoading, m.State())
	assert.Equal(t, 4, m.Key())

	m = m.Update(cmd())
	assert.Equal(t, StateError, m.State())
	assert.EqualError(t, m.Err(), "boom")

	fail = false
	m, cmd = m.Retry(context.Background())
	m = m.Update(cmd())
	assert.Equal(t, StateLoaded, m.State())
	assert.Equal(t, "post 4", m.Data())
	assert.NoError(t, m.Err())
}

func TestModel_IgnoresStaleResults(t *testing.T) {
	m := New(func(_ context.Context, id int) (int, error) { return id * 10, nil })

	m, first := m.Open(context.Background(), 1)
	m, second := m.Open(context.Background(), 2)

	m = m.Update(first())
	assert.Equal(t, StateLoading, m.State(), "result for key 1 is stale")

	m = m.Update(second())
	assert.Equal(t, 20, m.Data())
}

func TestModel_CloseDropsPending(t *testing.T) {
	m := New(func(_ context.Context, id int) (int, error) { return id, nil })

	m, cmd := m.Open(context.Background(), 1)
	m = m.Close()
	m = m.Update(cmd())

	assert.Equal(t, StateIdle, m.State())
	assert.Zero(t, m.Data())
}
