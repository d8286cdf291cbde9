package appstate

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nurpe/billboards/internal/normalize"
)

// OptionSource reads the dropdown lists shared by every form.
type OptionSource interface {
	ListMunicipalities(ctx context.Context) ([]string, error)
	ListSizes(ctx context.Context) ([]string, error)
	ListLevels(ctx context.Context) ([]string, error)
	ListFaces(ctx context.Context) ([]int, error)
	ListBillboardTypes(ctx context.Context) ([]string, error)
	ListPricingCategories(ctx context.Context) ([]string, error)
}

type Snapshot struct {
	Municipalities    []string  `json:"municipalities"`
	Sizes             []string  `json:"sizes"`
	Levels            []string  `json:"levels"`
	Faces             []int     `json:"faces"`
	BillboardTypes    []string  `json:"billboard_types"`
	PricingCategories []string  `json:"pricing_categories"`
	LoadedAt          time.Time `json:"loaded_at"`
}

// Options holds the last loaded snapshot. It is filled on start and only
// replaced by an explicit Refresh; a failed refresh keeps the previous one.
type Options struct {
	source OptionSource
	now    func() time.Time

	mu       sync.RWMutex
	snapshot *Snapshot
}

func NewOptions(source OptionSource) *Options {
	return &Options{source: source, now: time.Now}
}

// Refresh loads every list concurrently and swaps the snapshot when all succeed.
func (o *Options) Refresh(ctx context.Context) (Snapshot, error) {
	var next Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		next.Municipalities, err = o.source.ListMunicipalities(gctx)
		return err
	})
	g.Go(func() error {
		sizes, err := o.source.ListSizes(gctx)
		next.Sizes = normalizedSizes(sizes)
		return err
	})
	g.Go(func() (err error) {
		next.Levels, err = o.source.ListLevels(gctx)
		return err
	})
	g.Go(func() (err error) {
		next.Faces, err = o.source.ListFaces(gctx)
		return err
	})
	g.Go(func() (err error) {
		next.BillboardTypes, err = o.source.ListBillboardTypes(gctx)
		return err
	})
	g.Go(func() (err error) {
		next.PricingCategories, err = o.source.ListPricingCategories(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	next.LoadedAt = o.now().UTC()

	o.mu.Lock()
	o.snapshot = &next
	o.mu.Unlock()
	return next, nil
}

// Get returns the current snapshot, loading it on first use.
func (o *Options) Get(ctx context.Context) (Snapshot, error) {
	o.mu.RLock()
	current := o.snapshot
	o.mu.RUnlock()
	if current != nil {
		return *current, nil
	}
	return o.Refresh(ctx)
}

func normalizedSizes(raw []string) []string {
	seen := make(map[string]struct{}, len(raw))
	result := make([]string, 0, len(raw))
	for _, size := range raw {
		size = normalize.Size(size)
		if size == "" {
			continue
		}
		if _, ok := seen[size]; ok {
			continue
		}
		seen[size] = struct{}{}
		result = append(result, size)
	}
	sort.Strings(result)
	return result
}
