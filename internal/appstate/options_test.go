package appstate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	calls    atomic.Int32
	sizes    []string
	sizesErr error
}

func (f *fakeSource) ListMunicipalities(context.Context) ([]string, error) {
	f.calls.Add(1)
	return []string{"Tripoli", "Misrata"}, nil
}

func (f *fakeSource) ListSizes(context.Context) ([]string, error) {
	return f.sizes, f.sizesErr
}

func (f *fakeSource) ListLevels(context.Context) ([]string, error) {
	return []string{"A", "B", "S"}, nil
}

func (f *fakeSource) ListFaces(context.Context) ([]int, error) {
	return []int{1, 2}, nil
}

func (f *fakeSource) ListBillboardTypes(context.Context) ([]string, error) {
	return []string{"tower", "wall"}, nil
}

func (f *fakeSource) ListPricingCategories(context.Context) ([]string, error) {
	return []string{"regular", "marketer", "corporate"}, nil
}

func TestOptions_GetLoadsOnce(t *testing.T) {
	source := &fakeSource{sizes: []string{"12x4", "4x12", "3 x 4", ""}}
	options := NewOptions(source)
	options.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }

	first, err := options.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"3x4", "4x12"}, first.Sizes)
	assert.Equal(t, []int{1, 2}, first.Faces)
	assert.Equal(t, 2024, first.LoadedAt.Year())

	_, err = options.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), source.calls.Load())

	_, err = options.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), source.calls.Load())
}

func TestOptions_FailedRefreshKeepsSnapshot(t *testing.T) {
	source := &fakeSource{sizes: []string{"4x12"}}
	options := NewOptions(source)

	_, err := options.Refresh(context.Background())
	require.NoError(t, err)

	source.sizesErr = errors.New("backend down")
	_, err = options.Refresh(context.Background())
	require.Error(t, err)

	current, err := options.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"4x12"}, current.Sizes)
}
