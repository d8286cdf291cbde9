package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nurpe/billboards/internal/customers"
	"github.com/nurpe/billboards/internal/model"
)

type CustomerService struct {
	store     CustomerStore
	threshold float64
}

func NewCustomerService(store CustomerStore, threshold float64) *CustomerService {
	return &CustomerService{store: store, threshold: threshold}
}

func (s *CustomerService) Duplicates(ctx context.Context, principal model.Principal) ([]customers.Group, error) {
	if !principal.CanRead() {
		return nil, ErrPermissionDenied
	}
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	groups := customers.Groups(list, s.threshold)
	if groups == nil {
		groups = []customers.Group{}
	}
	return groups, nil
}

type MergeInput struct {
	PrimaryID    uuid.UUID
	DuplicateIDs []uuid.UUID
	Principal    model.Principal
}

// Merge folds the duplicates into the primary customer. Contracts and ledger
// entries move over; the duplicate records are deleted.
func (s *CustomerService) Merge(ctx context.Context, input MergeInput) error {
	if !input.Principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if input.PrimaryID == uuid.Nil {
		return fmt.Errorf("%w: primary_id is required", ErrInvalidInput)
	}

	duplicates := make([]uuid.UUID, 0, len(input.DuplicateIDs))
	for _, id := range uniqueIDs(input.DuplicateIDs) {
		if id == input.PrimaryID {
			return fmt.Errorf("%w: primary customer cannot be merged into itself", ErrInvalidInput)
		}
		duplicates = append(duplicates, id)
	}
	if len(duplicates) == 0 {
		return fmt.Errorf("%w: duplicate_ids is required", ErrInvalidInput)
	}

	for _, id := range append([]uuid.UUID{input.PrimaryID}, duplicates...) {
		if _, err := s.store.Get(ctx, id); err != nil {
			return notFound(err)
		}
	}
	return s.store.Merge(ctx, input.PrimaryID, duplicates)
}
