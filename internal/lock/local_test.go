package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	release, err := l.TryLock(ctx, "sweep", time.Minute)
	require.NoError(t, err)

	_, err = l.TryLock(ctx, "sweep", time.Minute)
	assert.ErrorIs(t, err, ErrNotObtained)

	require.NoError(t, release(ctx))
	again, err := l.TryLock(ctx, "sweep", time.Minute)
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}
