package service

import (
	"context"

	"github.com/nurpe/billboards/internal/appstate"
	"github.com/nurpe/billboards/internal/model"
)

type OptionsService struct {
	options *appstate.Options
}

func NewOptionsService(options *appstate.Options) *OptionsService {
	return &OptionsService{options: options}
}

func (s *OptionsService) Get(ctx context.Context, principal model.Principal) (appstate.Snapshot, error) {
	if !principal.CanRead() {
		return appstate.Snapshot{}, ErrPermissionDenied
	}
	return s.options.Get(ctx)
}

func (s *OptionsService) Refresh(ctx context.Context, principal model.Principal) (appstate.Snapshot, error) {
	if !principal.CanSell() {
		return appstate.Snapshot{}, ErrPermissionDenied
	}
	return s.options.Refresh(ctx)
}
