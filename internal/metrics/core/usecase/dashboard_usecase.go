package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"shop-analytics-service/internal/metrics/core/domain"
	"shop-analytics-service/internal/metrics/core/engine"
	"shop-analytics-service/internal/metrics/core/ports"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrFetchFailed        = errors.New("fetch failed")
	ErrInvalidGranularity = errors.New("invalid granularity")
)

const (
	CollectionOrders    = "orders"
	CollectionCustomers = "customers"
)

// Refresh outcomes reported to the observer.
const (
	OutcomePublished  = "published"
	OutcomeSuperseded = "superseded"
	OutcomeFailed     = "failed"
)

type RefreshResult struct {
	Snapshot  *domain.DashboardSnapshot
	Published bool // false when a newer refresh was published first
}

type DashboardUseCase struct {
	source      ports.RecordSourcePort
	publishers  []ports.SnapshotPublisherPort
	observer    ports.PipelineObserverPort
	logger      *log.Logger
	granularity domain.Granularity
	now         func() time.Time

	generation atomic.Uint64
	current    atomic.Pointer[publishedCycle]
	publishMu  sync.Mutex
}

// publishedCycle keeps the decoded records next to the snapshot derived from
// them so other granularities can be viewed without a new fetch.
type publishedCycle struct {
	snap *domain.DashboardSnapshot
	raw  *rawCollections
}

type DashboardOption func(*DashboardUseCase)

func WithPublishers(p ...ports.SnapshotPublisherPort) DashboardOption {
	return func(uc *DashboardUseCase) { uc.publishers = append(uc.publishers, p...) }
}

func WithObserver(o ports.PipelineObserverPort) DashboardOption {
	return func(uc *DashboardUseCase) { uc.observer = o }
}

func WithLogger(l *log.Logger) DashboardOption {
	return func(uc *DashboardUseCase) { uc.logger = l }
}

func WithClock(now func() time.Time) DashboardOption {
	return func(uc *DashboardUseCase) { uc.now = now }
}

// NewDashboardUseCase builds the refresh pipeline. g is the granularity used
// when Refresh is called without one.
func NewDashboardUseCase(source ports.RecordSourcePort, g domain.Granularity, opts ...DashboardOption) *DashboardUseCase {
	uc := &DashboardUseCase{
		source:      source,
		observer:    ports.NopObserver{},
		logger:      log.New(io.Discard, "", 0),
		granularity: g,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	if uc.granularity == "" {
		uc.granularity = domain.GranularityDay
	}
	return uc
}

// Snapshot returns the last published snapshot, or nil before the first
// successful refresh.
func (uc *DashboardUseCase) Snapshot() *domain.DashboardSnapshot {
	if cur := uc.current.Load(); cur != nil {
		return cur.snap
	}
	return nil
}

// View derives the published cycle's records at granularity g. Nothing is
// fetched or published; the result carries the published snapshot's identity.
// It returns nil before the first successful refresh.
func (uc *DashboardUseCase) View(ctx context.Context, g domain.Granularity) (*domain.DashboardSnapshot, error) {
	cur := uc.current.Load()
	if g == "" && cur != nil {
		g = cur.snap.Granularity
	}
	if g != "" && !isKnownGranularity(g) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGranularity, g)
	}
	if cur == nil {
		return nil, nil
	}
	if g == cur.snap.Granularity {
		return cur.snap, nil
	}

	view, err := uc.derive(ctx, g, cur.raw)
	if err != nil {
		return nil, err
	}
	view.ID = cur.snap.ID
	view.Generation = cur.snap.Generation
	view.GeneratedAt = cur.snap.GeneratedAt
	view.FetchErrors = cur.snap.FetchErrors
	return view, nil
}

// Refresh runs one cycle: fetch orders and customers once each, derive every
// series, then publish. A failed fetch degrades to empty series and is
// recorded on the snapshot. Input that is not a JSON array fails the cycle.
func (uc *DashboardUseCase) Refresh(ctx context.Context, g domain.Granularity) (*RefreshResult, error) {
	started := uc.now()
	if g == "" {
		g = uc.granularity
	}
	if !isKnownGranularity(g) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGranularity, g)
	}

	gen := uc.generation.Add(1)

	raw, fetchErrs, err := uc.fetch(ctx)
	if err != nil {
		uc.observer.RefreshDone(OutcomeFailed, uc.now().Sub(started).Seconds())
		return nil, err
	}

	snap, err := uc.derive(ctx, g, raw)
	if err != nil {
		uc.observer.RefreshDone(OutcomeFailed, uc.now().Sub(started).Seconds())
		return nil, err
	}
	uc.reportQuality(&snap.Diagnostics)
	snap.ID = uuid.NewString()
	snap.Generation = gen
	snap.GeneratedAt = uc.now().UTC()
	snap.FetchErrors = fetchErrs

	published := uc.publish(&publishedCycle{snap: snap, raw: raw})

	outcome := OutcomePublished
	if !published {
		outcome = OutcomeSuperseded
		uc.logger.Printf("[INFO] refresh generation %d superseded, not published", gen)
	}
	uc.observer.RefreshDone(outcome, uc.now().Sub(started).Seconds())

	return &RefreshResult{Snapshot: snap, Published: published}, nil
}

type rawCollections struct {
	orders    []domain.Order
	customers []domain.Customer

	ordersMalformed    int
	customersMalformed int
}

func (uc *DashboardUseCase) fetch(ctx context.Context) (*rawCollections, map[string]string, error) {
	var (
		raw    rawCollections
		mu     sync.Mutex
		errMap = map[string]string{}
	)

	recordFailure := func(collection string, err error) {
		err = fmt.Errorf("%w: %s: %w", ErrFetchFailed, collection, err)
		uc.logger.Printf("[WARN] %v", err)
		mu.Lock()
		errMap[collection] = err.Error()
		mu.Unlock()
	}

	var g errgroup.Group

	g.Go(func() error {
		body, err := uc.source.FetchCollection(ctx, CollectionOrders)
		uc.observer.FetchDone(CollectionOrders, err)
		if err != nil {
			recordFailure(CollectionOrders, err)
			return nil
		}
		orders, malformed, err := engine.DecodeOrders(body)
		if err != nil {
			return fmt.Errorf("decode %s: %w", CollectionOrders, err)
		}
		raw.orders, raw.ordersMalformed = orders, malformed
		return nil
	})

	g.Go(func() error {
		body, err := uc.source.FetchCollection(ctx, CollectionCustomers)
		uc.observer.FetchDone(CollectionCustomers, err)
		if err != nil {
			recordFailure(CollectionCustomers, err)
			return nil
		}
		customers, malformed, err := engine.DecodeCustomers(body)
		if err != nil {
			return fmt.Errorf("decode %s: %w", CollectionCustomers, err)
		}
		raw.customers, raw.customersMalformed = customers, malformed
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return &raw, errMap, nil
}

// derive runs the six transforms concurrently. Each goroutine writes only its
// own fields of the snapshot.
func (uc *DashboardUseCase) derive(ctx context.Context, g domain.Granularity, raw *rawCollections) (*domain.DashboardSnapshot, error) {
	snap := &domain.DashboardSnapshot{Granularity: g}
	diag := &snap.Diagnostics
	diag.OrdersMalformed = raw.ordersMalformed
	diag.CustomersMalformed = raw.customersMalformed

	eg, _ := errgroup.WithContext(ctx)

	eg.Go(func() error {
		sales, skipped, err := engine.BucketSales(raw.orders, g)
		if err != nil {
			return err
		}
		snap.Sales = sales
		snap.Growth = engine.GrowthRate(sales)
		diag.SalesSkipped = skipped
		return nil
	})
	eg.Go(func() error {
		snap.SalesByGranularity = engine.SalesByGranularity(raw.orders)
		return nil
	})
	eg.Go(func() error {
		points, skipped, err := engine.NewCustomers(raw.customers, g)
		if err != nil {
			return err
		}
		snap.NewCustomers = points
		diag.NewCustomersSkipped = skipped
		return nil
	})
	eg.Go(func() error {
		points, skipped, err := engine.RepeatCustomers(raw.customers, g)
		if err != nil {
			return err
		}
		snap.RepeatCustomers = points
		diag.RepeatCustomersSkipped = skipped
		return nil
	})
	eg.Go(func() error {
		snap.Geo = engine.GeoDistribution(raw.customers)
		return nil
	})
	eg.Go(func() error {
		snap.LifetimeValue = engine.LifetimeValue(raw.customers, raw.orders)
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (uc *DashboardUseCase) reportQuality(d *domain.Diagnostics) {
	uc.observer.RecordsMalformed(CollectionOrders, d.OrdersMalformed)
	uc.observer.RecordsMalformed(CollectionCustomers, d.CustomersMalformed)
	uc.observer.RecordsSkipped("sales", d.SalesSkipped)
	uc.observer.RecordsSkipped("new_customers", d.NewCustomersSkipped)
	uc.observer.RecordsSkipped("repeat_customers", d.RepeatCustomersSkipped)

	if d.OrdersMalformed > 0 || d.CustomersMalformed > 0 {
		uc.logger.Printf("[WARN] malformed records: orders=%d customers=%d", d.OrdersMalformed, d.CustomersMalformed)
	}
	if n := d.SalesSkipped + d.NewCustomersSkipped + d.RepeatCustomersSkipped; n > 0 {
		uc.logger.Printf("[WARN] records without a usable date skipped: sales=%d new=%d repeat=%d",
			d.SalesSkipped, d.NewCustomersSkipped, d.RepeatCustomersSkipped)
	}
}

// publish swaps in the cycle unless a newer generation is already out.
// Publishers run under the lock so they observe generations in order.
func (uc *DashboardUseCase) publish(cycle *publishedCycle) bool {
	uc.publishMu.Lock()
	defer uc.publishMu.Unlock()

	if cur := uc.current.Load(); cur != nil && cur.snap.Generation >= cycle.snap.Generation {
		return false
	}
	uc.current.Store(cycle)

	for _, p := range uc.publishers {
		p.Publish(cycle.snap)
	}
	return true
}

func isKnownGranularity(g domain.Granularity) bool {
	for _, known := range domain.Granularities {
		if g == known {
			return true
		}
	}
	return false
}
