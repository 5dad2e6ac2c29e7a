package scraper

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStaleStore struct {
	gotDays int32
	count   int64
	err     error
}

func (f *fakeStaleStore) DeactivateStaleExternalJobs(_ context.Context, retentionDays int32) (int64, error) {
	f.gotDays = retentionDays
	return f.count, f.err
}

func TestSweepPassesRetentionWindow(t *testing.T) {
	store := &fakeStaleStore{count: 7}
	s := NewSweeper(store, 45)

	count, err := s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.Equal(t, int32(45), store.gotDays)
}

func TestSweepDefaultsRetention(t *testing.T) {
	store := &fakeStaleStore{}
	s := NewSweeper(store, 0)

	_, err := s.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(30), store.gotDays)
}

func TestSweepPropagatesErrors(t *testing.T) {
	store := &fakeStaleStore{err: errors.New("db down")}
	s := NewSweeper(store, 30)

	_, err := s.Sweep(context.Background())
	assert.Error(t, err)
}
