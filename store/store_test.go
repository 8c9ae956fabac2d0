package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testEmail(id, counterpart, direction string, date time.Time) Email {
	return Email{
		MessageID:   id,
		ThreadID:    "t-" + id,
		FromEmail:   "me@x.com",
		ToEmail:     counterpart,
		Counterpart: counterpart,
		Date:        date,
		Subject:     "subject " + id,
		Body:        "body " + id,
		Direction:   direction,
	}
}

func TestUpsertReplacesByMessageID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := testEmail("m1", "a@y.com", "outbound", time.UnixMilli(1000))
	require.NoError(t, s.Upsert(ctx, first))

	second := first
	second.Subject = "rewritten"
	second.Body = "new body"
	second.Direction = "inbound"
	require.NoError(t, s.Upsert(ctx, second))

	emails, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, emails, 1)
	assert.Equal(t, "rewritten", emails[0].Subject)
	assert.Equal(t, "new body", emails[0].Body)
	assert.Equal(t, "inbound", emails[0].Direction)
}

func TestAggregate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.Upsert(ctx, testEmail("m1", "a@y.com", "outbound", base)))
	require.NoError(t, s.Upsert(ctx, testEmail("m2", "a@y.com", "inbound", base.Add(time.Hour))))
	require.NoError(t, s.Upsert(ctx, testEmail("m3", "b@y.com", "outbound", base.Add(2*time.Hour))))

	stats, err := s.Aggregate(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Outbound)
	assert.Equal(t, 1, stats.Inbound)
	assert.Equal(t, 2, stats.DistinctCounterparts)
	assert.Equal(t, base.UnixMilli(), stats.Earliest.UnixMilli())
	assert.Equal(t, base.Add(2*time.Hour).UnixMilli(), stats.Latest.UnixMilli())

	require.Len(t, stats.PerCounterpart, 2)
	assert.Equal(t, CounterpartCount{Counterpart: "a@y.com", Count: 2}, stats.PerCounterpart[0])
	assert.Equal(t, CounterpartCount{Counterpart: "b@y.com", Count: 1}, stats.PerCounterpart[1])
}

func TestAggregateEmpty(t *testing.T) {
	s := newTestStore(t)

	stats, err := s.Aggregate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.DistinctCounterparts)
	assert.True(t, stats.Earliest.IsZero())
	assert.True(t, stats.Latest.IsZero())
	assert.Empty(t, stats.PerCounterpart)
}

func TestResetWipesRows(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, testEmail("m1", "a@y.com", "outbound", time.UnixMilli(1000))))
	require.NoError(t, s.Reset(ctx))

	stats, err := s.Aggregate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Total)

	// Reset is idempotent.
	require.NoError(t, s.Reset(ctx))
}

func TestListChronologicalOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, testEmail("late", "a@y.com", "outbound", time.UnixMilli(3000))))
	require.NoError(t, s.Upsert(ctx, testEmail("early", "a@y.com", "inbound", time.UnixMilli(1000))))
	require.NoError(t, s.Upsert(ctx, testEmail("mid", "b@y.com", "outbound", time.UnixMilli(2000))))

	emails, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, emails, 3)
	assert.Equal(t, "early", emails[0].MessageID)
	assert.Equal(t, "mid", emails[1].MessageID)
	assert.Equal(t, "late", emails[2].MessageID)
}
