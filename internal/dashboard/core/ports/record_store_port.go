package ports

import (
	"context"

	"marketing-dashboard-service/internal/dashboard/core/domain"
)

type Entity string

const (
	EntityCampaign  Entity = "campaign"
	EntityStage     Entity = "stage"
	EntityMailing   Entity = "mailing"
	EntityTrace     Entity = "trace"
	EntityContact   Entity = "contact"
	EntityOrder     Entity = "order"
	EntityLink      Entity = "link"
	EntityLinkClick Entity = "link_click"
)

type Op string

const (
	OpEq      Op = "="
	OpNotEq   Op = "!="
	OpIn      Op = "IN"
	OpNotIn   Op = "NOT IN"
	OpGte     Op = ">="
	OpLt      Op = "<"
	OpNotNull Op = "IS NOT NULL"
	OpIsNull  Op = "IS NULL"
)

// Condition is a single field test. Value is ignored for the null ops and
// must be a slice for IN / NOT IN.
type Condition struct {
	Field string
	Op    Op
	Value any
}

// Predicate is a conjunction of conditions. An empty predicate matches every row.
type Predicate []Condition

// And returns a new predicate with extra conditions appended; p is not modified.
func (p Predicate) And(conds ...Condition) Predicate {
	out := make(Predicate, 0, len(p)+len(conds))
	out = append(out, p...)
	return append(out, conds...)
}

func Eq(field string, v any) Condition { return Condition{Field: field, Op: OpEq, Value: v} }
func NotEq(field string, v any) Condition { return Condition{Field: field, Op: OpNotEq, Value: v} }
func In(field string, v any) Condition { return Condition{Field: field, Op: OpIn, Value: v} }
func NotIn(field string, v any) Condition { return Condition{Field: field, Op: OpNotIn, Value: v} }
func Gte(field string, v any) Condition { return Condition{Field: field, Op: OpGte, Value: v} }
func Lt(field string, v any) Condition { return Condition{Field: field, Op: OpLt, Value: v} }
func NotNull(field string) Condition { return Condition{Field: field, Op: OpNotNull} }
func IsNull(field string) Condition { return Condition{Field: field, Op: OpIsNull} }

type ReadQuery struct {
	Where   Predicate
	Fields  []string
	OrderBy string
	Desc    bool
	Limit   int // 0 = no limit
}

type GroupCount struct {
	Key   any
	Count int64
}

// RecordStore is the read-only query surface the dashboard needs from the
// system of record.
//
// GroupCount returns groups ordered by count descending, ties by key
// ascending. A NOT IN condition also matches rows where the field is NULL.
type RecordStore interface {
	Count(ctx context.Context, entity Entity, where Predicate) (int64, error)
	Read(ctx context.Context, entity Entity, q ReadQuery) ([]domain.Record, error)
	GroupCount(ctx context.Context, entity Entity, where Predicate, groupField string, limit int) ([]GroupCount, error)
}
