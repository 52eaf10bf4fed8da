package ports

import "shop-analytics-service/internal/metrics/core/domain"

// SnapshotPublisherPort receives every snapshot that wins the last-write-wins
// race. Publish must not retain a mutable reference it intends to change.
type SnapshotPublisherPort interface {
	Publish(s *domain.DashboardSnapshot)
}

// PipelineObserverPort is notified about pipeline outcomes, e.g. to export
// counters.
type PipelineObserverPort interface {
	FetchDone(collection string, err error)
	RecordsMalformed(collection string, n int)
	RecordsSkipped(series string, n int)
	RefreshDone(outcome string, seconds float64)
}

// NopObserver discards every notification.
type NopObserver struct{}

func (NopObserver) FetchDone(string, error) {}
func (NopObserver) RecordsMalformed(string, int) {}
func (NopObserver) RecordsSkipped(string, int) {}
func (NopObserver) RefreshDone(string, float64) {}
