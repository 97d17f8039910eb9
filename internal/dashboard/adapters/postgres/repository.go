package postgres

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"marketing-dashboard-service/internal/dashboard/core/domain"
	"marketing-dashboard-service/internal/dashboard/core/ports"

	"github.com/lib/pq"
)

var (
	ErrUnknownEntity     = errors.New("unknown entity")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrNoFields          = errors.New("read requires at least one field")
)

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Tables maps entity kinds to table (or view) names.
type Tables map[ports.Entity]string

// DefaultTables returns the table names of a stock mass-mailing schema.
func DefaultTables() Tables {
	return Tables{
		ports.EntityCampaign:  "utm_campaign",
		ports.EntityStage:     "utm_stage",
		ports.EntityMailing:   "mailing_mailing",
		ports.EntityTrace:     "mailing_trace",
		ports.EntityContact:   "mailing_contact",
		ports.EntityOrder:     "sale_order",
		ports.EntityLink:      "link_tracker",
		ports.EntityLinkClick: "link_tracker_click",
	}
}

// Merge returns a copy of t with non-empty overrides applied.
func (t Tables) Merge(overrides map[string]string) Tables {
	out := make(Tables, len(t))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range overrides {
		if v != "" {
			out[ports.Entity(k)] = v
		}
	}
	return out
}

type RecordRepository struct {
	db     DB
	tables Tables
}

var _ ports.RecordStore = (*RecordRepository)(nil)

func NewRecordRepository(db DB, tables Tables) *RecordRepository {
	if tables == nil {
		tables = DefaultTables()
	}
	return &RecordRepository{db: db, tables: tables}
}

func (r *RecordRepository) Count(ctx context.Context, entity ports.Entity, where ports.Predicate) (int64, error) {
	table, err := r.table(entity)
	if err != nil {
		return 0, err
	}

	cond, args, err := buildWhere(where, nil)
	if err != nil {
		return 0, err
	}

	query := `SELECT COUNT(*) FROM ` + table + ` WHERE ` + cond

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, err
		}
	}

	if err := rows.Err(); err != nil {
		return 0, err
	}

	return n, nil
}

func (r *RecordRepository) Read(ctx context.Context, entity ports.Entity, q ports.ReadQuery) ([]domain.Record, error) {
	table, err := r.table(entity)
	if err != nil {
		return nil, err
	}
	if len(q.Fields) == 0 {
		return nil, ErrNoFields
	}
	for _, f := range q.Fields {
		if err := checkIdent(f); err != nil {
			return nil, err
		}
	}

	cond, args, err := buildWhere(q.Where, nil)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + strings.Join(q.Fields, ", ") + ` FROM ` + table + ` WHERE ` + cond)

	if q.OrderBy != "" {
		if err := checkIdent(q.OrderBy); err != nil {
			return nil, err
		}
		sb.WriteString(` ORDER BY ` + q.OrderBy)
		if q.Desc {
			sb.WriteString(` DESC NULLS LAST`)
		} else {
			sb.WriteString(` ASC NULLS LAST`)
		}
		sb.WriteString(`, id`)
	}

	if q.Limit > 0 {
		args = append(args, q.Limit)
		sb.WriteString(fmt.Sprintf(` LIMIT $%d`, len(args)))
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Record
	for rows.Next() {
		vals := make([]any, len(q.Fields))
		dest := make([]any, len(q.Fields))
		for i := range vals {
			dest[i] = &vals[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		rec := make(domain.Record, len(q.Fields))
		for i, f := range q.Fields {
			rec[f] = normalize(vals[i])
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *RecordRepository) GroupCount(ctx context.Context, entity ports.Entity, where ports.Predicate, groupField string, limit int) ([]ports.GroupCount, error) {
	table, err := r.table(entity)
	if err != nil {
		return nil, err
	}
	if err := checkIdent(groupField); err != nil {
		return nil, err
	}

	cond, args, err := buildWhere(where, nil)
	if err != nil {
		return nil, err
	}

	query := `
SELECT
    ` + groupField + ` AS group_key,
    COUNT(*) AS total_count
FROM ` + table + `
WHERE ` + cond + `
GROUP BY ` + groupField + `
ORDER BY total_count DESC, group_key ASC NULLS LAST`

	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf("\nLIMIT $%d", len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []ports.GroupCount
	for rows.Next() {
		var (
			key   any
			count int64
		)
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		groups = append(groups, ports.GroupCount{Key: normalize(key), Count: count})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return groups, nil
}

func (r *RecordRepository) table(entity ports.Entity) (string, error) {
	name, ok := r.tables[entity]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	if err := checkIdent(name); err != nil {
		return "", err
	}
	return name, nil
}

func checkIdent(s string) error {
	if !identRe.MatchString(s) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return nil
}

// buildWhere renders p as a SQL condition with positional parameters numbered
// after the ones already in args.
func buildWhere(p ports.Predicate, args []any) (string, []any, error) {
	if len(p) == 0 {
		return "TRUE", args, nil
	}

	parts := make([]string, 0, len(p))
	for _, c := range p {
		if err := checkIdent(c.Field); err != nil {
			return "", nil, err
		}

		switch c.Op {
		case ports.OpNotNull, ports.OpIsNull:
			parts = append(parts, c.Field+" "+string(c.Op))

		case ports.OpEq, ports.OpNotEq, ports.OpGte, ports.OpLt:
			op := string(c.Op)
			if c.Op == ports.OpNotEq {
				op = "<>"
			}
			args = append(args, c.Value)
			parts = append(parts, fmt.Sprintf("%s %s $%d", c.Field, op, len(args)))

		case ports.OpIn, ports.OpNotIn:
			rv := reflect.ValueOf(c.Value)
			if rv.Kind() != reflect.Slice {
				return "", nil, fmt.Errorf("%s value for %s must be a slice, got %T", c.Op, c.Field, c.Value)
			}
			if rv.Len() == 0 {
				if c.Op == ports.OpIn {
					parts = append(parts, "FALSE")
				} else {
					parts = append(parts, "TRUE")
				}
				continue
			}
			args = append(args, pq.Array(c.Value))
			if c.Op == ports.OpIn {
				parts = append(parts, fmt.Sprintf("%s = ANY($%d)", c.Field, len(args)))
			} else {
				parts = append(parts, fmt.Sprintf("(%s IS NULL OR %s <> ALL($%d))", c.Field, c.Field, len(args)))
			}

		default:
			return "", nil, fmt.Errorf("unsupported operator %q", c.Op)
		}
	}

	return strings.Join(parts, " AND "), args, nil
}

// lib/pq returns text and numeric columns as []byte.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
