package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/billboards/internal/model"
)

func TestCustomerService_DuplicatesAndMerge(t *testing.T) {
	first := model.Customer{ID: uuid.New(), Name: "شركة الأمل"}
	second := model.Customer{ID: uuid.New(), Name: "شركة الامل"}
	other := model.Customer{ID: uuid.New(), Name: "Atlas Media"}
	store := newFakeCustomers(first, second, other)
	svc := NewCustomerService(store, 0.8)
	ctx := context.Background()

	groups, err := svc.Duplicates(ctx, viewer)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, first.ID, groups[0].Primary.ID)
	require.Len(t, groups[0].Duplicates, 1)
	assert.Equal(t, second.ID, groups[0].Duplicates[0].ID)

	err = svc.Merge(ctx, MergeInput{PrimaryID: first.ID, DuplicateIDs: []uuid.UUID{second.ID}, Principal: sales})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = svc.Merge(ctx, MergeInput{PrimaryID: first.ID, DuplicateIDs: []uuid.UUID{first.ID}, Principal: admin})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.Merge(ctx, MergeInput{PrimaryID: first.ID, DuplicateIDs: []uuid.UUID{uuid.New()}, Principal: admin})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Merge(ctx, MergeInput{PrimaryID: first.ID, DuplicateIDs: []uuid.UUID{second.ID, second.ID}, Principal: admin})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{second.ID}, store.merged[first.ID])

	groups, err = svc.Duplicates(ctx, viewer)
	require.NoError(t, err)
	assert.Empty(t, groups)
}
