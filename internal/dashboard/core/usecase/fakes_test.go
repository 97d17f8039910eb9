package usecase_test

import (
	"context"
	"sync"

	"marketing-dashboard-service/internal/dashboard/adapters/memory"
	"marketing-dashboard-service/internal/dashboard/core/domain"
	"marketing-dashboard-service/internal/dashboard/core/ports"
)

// recordingStore wraps a store and remembers which entities were queried.
type recordingStore struct {
	ports.RecordStore

	mu     sync.Mutex
	calls  []ports.Entity
	wheres map[ports.Entity][]ports.Predicate
}

func record(s ports.RecordStore) *recordingStore {
	return &recordingStore{RecordStore: s}
}

func (r *recordingStore) note(e ports.Entity, where ports.Predicate) {
	r.mu.Lock()
	r.calls = append(r.calls, e)
	if r.wheres == nil {
		r.wheres = make(map[ports.Entity][]ports.Predicate)
	}
	r.wheres[e] = append(r.wheres[e], where)
	r.mu.Unlock()
}

// condition returns the first condition on field passed for entity e.
func (r *recordingStore) condition(e ports.Entity, field string) (ports.Condition, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, where := range r.wheres[e] {
		for _, c := range where {
			if c.Field == field {
				return c, true
			}
		}
	}
	return ports.Condition{}, false
}

func (r *recordingStore) queried(e ports.Entity) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.calls {
		if c == e {
			return true
		}
	}
	return false
}

func (r *recordingStore) Count(ctx context.Context, e ports.Entity, where ports.Predicate) (int64, error) {
	r.note(e, where)
	return r.RecordStore.Count(ctx, e, where)
}

func (r *recordingStore) Read(ctx context.Context, e ports.Entity, q ports.ReadQuery) ([]domain.Record, error) {
	r.note(e, q.Where)
	return r.RecordStore.Read(ctx, e, q)
}

func (r *recordingStore) GroupCount(ctx context.Context, e ports.Entity, where ports.Predicate, field string, limit int) ([]ports.GroupCount, error) {
	r.note(e, where)
	return r.RecordStore.GroupCount(ctx, e, where, field, limit)
}

func allCaps() domain.SchemaCapabilities {
	return domain.SchemaCapabilities{
		MailingCampaign:  true,
		MailingSource:    true,
		ABTesting:        true,
		InvoicingFields:  true,
		Orders:           true,
		Stages:           true,
		LinkTracking:     true,
		TraceStatusField: domain.StatusFieldTraceStatus,
	}
}

func storeWith(tables map[ports.Entity][]domain.Record) *memory.Store {
	return memory.NewStore(memory.Fixture{Capabilities: allCaps(), Tables: tables})
}

func traces(mailing int64, statuses ...string) []domain.Record {
	out := make([]domain.Record, 0, len(statuses))
	for i, s := range statuses {
		out = append(out, domain.Record{
			"id":              mailing*1000 + int64(i),
			"mass_mailing_id": mailing,
			"trace_status":    s,
		})
	}
	return out
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
