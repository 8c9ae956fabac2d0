package sync

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/hwetherall/innovera-email-analysis/store"
)

// Provider is the slice of the Gmail session the engine needs: listing
// candidate message IDs for a query and fetching full messages.
type Provider interface {
	ListMessageIDs(ctx context.Context, query string) ([]string, error)
	GetMessage(ctx context.Context, id string) (*gmailapi.Message, error)
}

// Engine drives one sync run: reset the store, list candidates, then fetch,
// classify, and upsert each one in listing order.
type Engine struct {
	provider Provider
	store    *store.Store
	spec     Spec
	log      zerolog.Logger
}

func NewEngine(provider Provider, st *store.Store, spec Spec, log zerolog.Logger) *Engine {
	return &Engine{provider: provider, store: st, spec: spec, log: log}
}

// Summary reports the outcome of a run.
type Summary struct {
	Found        int      // candidates returned by the listing
	Processed    int      // messages stored
	Skipped      int      // candidates that failed to fetch
	Counterparts []string // distinct counterpart addresses seen, sorted
	Stats        store.Stats
}

// Run executes one full sync pass. The listing call failing is fatal; a
// single message failing to fetch is logged and skipped. Each candidate gets
// exactly one attempt, strictly in sequence, so a later duplicate message ID
// overwrites an earlier one in listing order.
func (e *Engine) Run(ctx context.Context) (*Summary, error) {
	if err := e.store.Reset(ctx); err != nil {
		return nil, fmt.Errorf("resetting store: %w", err)
	}

	query := e.spec.Query()
	e.log.Info().Str("query", query).Msg("listing candidate messages")
	ids, err := e.provider.ListMessageIDs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	summary := &Summary{Found: len(ids)}
	if len(ids) == 0 {
		e.log.Info().Msg("no messages matched the query")
		return summary, nil
	}
	e.log.Info().Int("count", len(ids)).Msg("processing candidates")

	seen := make(map[string]struct{})
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		msg, err := e.provider.GetMessage(ctx, id)
		if err != nil {
			summary.Skipped++
			e.log.Warn().Err(err).Str("message_id", id).Msg("skipping message, fetch failed")
			continue
		}

		email, ok := e.buildEmail(msg)
		if !ok {
			continue
		}
		if err := e.store.Upsert(ctx, email); err != nil {
			return nil, fmt.Errorf("storing message %s: %w", id, err)
		}
		seen[email.Counterpart] = struct{}{}
		summary.Processed++
		e.log.Debug().
			Str("message_id", id).
			Str("direction", email.Direction).
			Str("counterpart", email.Counterpart).
			Msg("stored message")
	}

	for c := range seen {
		summary.Counterparts = append(summary.Counterparts, c)
	}
	sort.Strings(summary.Counterparts)

	stats, err := e.store.Aggregate(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregating stats: %w", err)
	}
	summary.Stats = stats

	e.log.Info().
		Int("processed", summary.Processed).
		Int("skipped", summary.Skipped).
		Msg("sync completed")
	return summary, nil
}

// buildEmail turns a raw message into a storable row, or reports that the
// message is outside the filter and should be discarded.
func (e *Engine) buildEmail(msg *gmailapi.Message) (store.Email, bool) {
	if msg.Payload == nil {
		return store.Email{}, false
	}
	headers := msg.Payload.Headers

	from := headerValue(headers, "From")
	to := headerValue(headers, "To")
	match, ok := e.spec.Classify(from, to)
	if !ok {
		return store.Email{}, false
	}

	subject := headerValue(headers, "Subject")
	if subject == "" {
		subject = "No Subject"
	}

	return store.Email{
		MessageID:   msg.Id,
		ThreadID:    msg.ThreadId,
		FromEmail:   bareAddress(from),
		ToEmail:     bareAddress(to),
		Counterpart: match.Counterpart,
		Date:        time.UnixMilli(msg.InternalDate),
		Subject:     subject,
		Body:        PlainTextBody(msg.Payload),
		Direction:   string(match.Direction),
	}, true
}
