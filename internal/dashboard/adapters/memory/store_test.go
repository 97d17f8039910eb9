package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketing-dashboard-service/internal/dashboard/adapters/memory"
	"marketing-dashboard-service/internal/dashboard/core/domain"
	"marketing-dashboard-service/internal/dashboard/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() *memory.Store {
	return memory.NewStore(memory.Fixture{
		Tables: map[ports.Entity][]domain.Record{
			ports.EntityMailing: {
				{"id": int64(1), "subject": "a", "campaign_id": int64(7), "sent_date": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
				{"id": int64(2), "subject": "b", "campaign_id": nil, "sent_date": nil},
				{"id": int64(3), "subject": "c", "campaign_id": int64(8), "sent_date": time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
			},
			ports.EntityLinkClick: {
				{"id": int64(1), "link_id": int64(2)},
				{"id": int64(2), "link_id": int64(1)},
				{"id": int64(3), "link_id": int64(2)},
				{"id": int64(4), "link_id": int64(1)},
				{"id": int64(5), "link_id": int64(3)},
			},
		},
	})
}

func TestCount_Operators(t *testing.T) {
	s := newStore()
	ctx := context.Background()

	cases := []struct {
		name  string
		where ports.Predicate
		want  int64
	}{
		{"empty predicate", nil, 3},
		{"eq", ports.Predicate{ports.Eq("campaign_id", 7)}, 1},
		{"not eq skips null", ports.Predicate{ports.NotEq("campaign_id", int64(7))}, 1},
		{"in", ports.Predicate{ports.In("id", []int64{1, 3, 99})}, 2},
		{"empty in", ports.Predicate{ports.In("id", []int64{})}, 0},
		{"not in matches null", ports.Predicate{ports.NotIn("campaign_id", []int64{7})}, 2},
		{"empty not in", ports.Predicate{ports.NotIn("id", []int64{})}, 3},
		{"not null", ports.Predicate{ports.NotNull("sent_date")}, 2},
		{"is null", ports.Predicate{ports.IsNull("campaign_id")}, 1},
		{"gte time", ports.Predicate{ports.Gte("sent_date", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))}, 1},
		{"conjunction", ports.Predicate{ports.NotNull("campaign_id"), ports.Lt("id", 3)}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n, err := s.Count(ctx, ports.EntityMailing, tc.where)
			require.NoError(t, err)
			assert.Equal(t, tc.want, n)
		})
	}
}

func TestCount_InRequiresSlice(t *testing.T) {
	s := newStore()
	_, err := s.Count(context.Background(), ports.EntityMailing, ports.Predicate{ports.In("id", 1)})
	require.Error(t, err)
}

func TestRead_OrderNullsLastAndLimit(t *testing.T) {
	s := newStore()

	recs, err := s.Read(context.Background(), ports.EntityMailing, ports.ReadQuery{
		Fields:  []string{"id"},
		OrderBy: "sent_date",
		Desc:    true,
	})
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, int64(3), recs[0].Int64("id"))
	assert.Equal(t, int64(1), recs[1].Int64("id"))
	assert.Equal(t, int64(2), recs[2].Int64("id"))
	assert.False(t, recs[0].Has("subject"), "fields must be projected")

	recs, err = s.Read(context.Background(), ports.EntityMailing, ports.ReadQuery{OrderBy: "sent_date", Limit: 1})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(1), recs[0].Int64("id"))
}

func TestGroupCount_OrderedByCountThenKey(t *testing.T) {
	s := newStore()

	groups, err := s.GroupCount(context.Background(), ports.EntityLinkClick, nil, "link_id", 2)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, int64(1), groups[0].Key)
	assert.Equal(t, int64(2), groups[0].Count)
	assert.Equal(t, int64(2), groups[1].Key)
	assert.Equal(t, int64(2), groups[1].Count)
}

func TestFailWith(t *testing.T) {
	s := newStore()
	boom := errors.New("boom")
	s.FailWith(boom)

	_, err := s.Count(context.Background(), ports.EntityMailing, nil)
	assert.ErrorIs(t, err, boom)

	s.FailWith(nil)
	_, err = s.Count(context.Background(), ports.EntityMailing, nil)
	assert.NoError(t, err)
}

func TestCanceledContext(t *testing.T) {
	s := newStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Read(ctx, ports.EntityMailing, ports.ReadQuery{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseFixture(t *testing.T) {
	doc := []byte(`
capabilities:
  mailing_campaign: true
  stages: true
  trace_status_field: trace_status
tables:
  mailing:
    - id: 1
      subject: Hello
      sent_date: "2024-05-01 10:00:00"
  contact:
    - id: 1
      is_blacklisted: true
`)

	f, err := memory.ParseFixture(doc)
	require.NoError(t, err)

	assert.True(t, f.Capabilities.MailingCampaign)
	assert.True(t, f.Capabilities.Stages)
	assert.False(t, f.Capabilities.LinkTracking)
	assert.Equal(t, "trace_status", f.Capabilities.StatusColumn())

	m := f.Tables[ports.EntityMailing][0]
	ts, ok := m.Time("sent_date")
	require.True(t, ok)
	assert.Equal(t, "2024-05-01 10:00:00", ts.Format(time.DateTime))
	assert.Equal(t, int64(1), m.Int64("id"))

	s := memory.NewStore(f)
	n, err := s.Count(context.Background(), ports.EntityContact, ports.Predicate{ports.Eq("is_blacklisted", true)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestParseFixture_UnknownEntity(t *testing.T) {
	_, err := memory.ParseFixture([]byte("tables:\n  invoices: []\n"))
	require.Error(t, err)
}
