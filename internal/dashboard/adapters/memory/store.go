// Package memory is a RecordStore over in-process fixtures. It backs the
// demo driver and the use case tests.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"marketing-dashboard-service/internal/dashboard/core/domain"
	"marketing-dashboard-service/internal/dashboard/core/ports"
)

// Fixture is the full content of a memory store.
type Fixture struct {
	Capabilities domain.SchemaCapabilities
	Tables       map[ports.Entity][]domain.Record
}

type Store struct {
	mu     sync.RWMutex
	caps   domain.SchemaCapabilities
	tables map[ports.Entity][]domain.Record
	err    error
}

var _ ports.RecordStore = (*Store)(nil)

func NewStore(f Fixture) *Store {
	tables := make(map[ports.Entity][]domain.Record, len(f.Tables))
	for e, rows := range f.Tables {
		tables[e] = append([]domain.Record(nil), rows...)
	}
	return &Store{caps: f.Capabilities, tables: tables}
}

func (s *Store) Capabilities() domain.SchemaCapabilities {
	return s.caps
}

// FailWith makes every subsequent query return err. Pass nil to clear.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Store) Count(ctx context.Context, entity ports.Entity, where ports.Predicate) (int64, error) {
	rows, err := s.filter(ctx, entity, where)
	if err != nil {
		return 0, err
	}
	return int64(len(rows)), nil
}

func (s *Store) Read(ctx context.Context, entity ports.Entity, q ports.ReadQuery) ([]domain.Record, error) {
	rows, err := s.filter(ctx, entity, q.Where)
	if err != nil {
		return nil, err
	}

	if q.OrderBy != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			a, b := rows[i][q.OrderBy], rows[j][q.OrderBy]
			// nulls last in both directions
			if a == nil || b == nil {
				return a != nil && b == nil
			}
			if q.Desc {
				return compare(b, a) < 0
			}
			return compare(a, b) < 0
		})
	}

	if q.Limit > 0 && len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}

	out := make([]domain.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, project(r, q.Fields))
	}
	return out, nil
}

func (s *Store) GroupCount(ctx context.Context, entity ports.Entity, where ports.Predicate, groupField string, limit int) ([]ports.GroupCount, error) {
	rows, err := s.filter(ctx, entity, where)
	if err != nil {
		return nil, err
	}

	var (
		groups []ports.GroupCount
		index  = make(map[any]int)
	)
	for _, r := range rows {
		k := normalize(r[groupField])
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, ports.GroupCount{Key: r[groupField]})
		}
		groups[i].Count++
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		a, b := groups[i].Key, groups[j].Key
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return compare(a, b) < 0
	})

	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}
	return groups, nil
}

func (s *Store) filter(ctx context.Context, entity ports.Entity, where ports.Predicate) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.err != nil {
		return nil, s.err
	}

	var out []domain.Record
	for _, r := range s.tables[entity] {
		ok, err := matches(r, where)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entity, err)
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func matches(r domain.Record, where ports.Predicate) (bool, error) {
	for _, c := range where {
		ok, err := eval(r[c.Field], c)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func eval(v any, c ports.Condition) (bool, error) {
	switch c.Op {
	case ports.OpIsNull:
		return v == nil, nil
	case ports.OpNotNull:
		return v != nil, nil
	case ports.OpIn, ports.OpNotIn:
		list, err := values(c.Value)
		if err != nil {
			return false, err
		}
		found := false
		if v != nil {
			for _, item := range list {
				if compare(v, item) == 0 {
					found = true
					break
				}
			}
		}
		if c.Op == ports.OpIn {
			return found, nil
		}
		return !found, nil
	}

	if v == nil {
		return false, nil
	}

	switch c.Op {
	case ports.OpEq:
		return compare(v, c.Value) == 0, nil
	case ports.OpNotEq:
		return compare(v, c.Value) != 0, nil
	case ports.OpGte:
		return compare(v, c.Value) >= 0, nil
	case ports.OpLt:
		return compare(v, c.Value) < 0, nil
	}
	return false, fmt.Errorf("unsupported operator %q", c.Op)
}

func values(v any) ([]any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("IN value must be a slice, got %T", v)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

func project(r domain.Record, fields []string) domain.Record {
	out := make(domain.Record, len(fields))
	if len(fields) == 0 {
		for k, v := range r {
			out[k] = v
		}
		return out
	}
	for _, f := range fields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	return out
}

// normalize folds numeric kinds so int and int64 keys group together.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case time.Time:
		return x.UnixNano()
	}
	return v
}

func compare(a, b any) int {
	a, b = normalize(a), normalize(b)
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		if !ok {
			break
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case int64: // time
		y, ok := b.(int64)
		if !ok {
			break
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case string:
		y, ok := b.(string)
		if !ok {
			break
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case bool:
		y, ok := b.(bool)
		if !ok {
			break
		}
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	}
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}
