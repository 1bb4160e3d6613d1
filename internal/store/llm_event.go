package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/website1975/vatly12CTST/ent"
	"github.com/website1975/vatly12CTST/ent/llmrequestevent"
	"github.com/website1975/vatly12CTST/ent/predicate"
)

// eventRepo implements EventRepo backed by ent and the global sequence counter.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.LLMRequestEvent.Create().
		SetSequence(seqNum).
		SetProvider(data.Provider).
		SetModel(data.Model).
		SetPurpose(data.Purpose).
		SetLessonID(data.LessonID).
		SetInputTokens(data.InputTokens).
		SetOutputTokens(data.OutputTokens).
		SetLatencyMs(data.LatencyMs).
		SetSuccess(data.Success).
		SetErrorMessage(data.ErrorMessage).
		SetRequestBody(data.RequestBody).
		SetResponseBody(data.ResponseBody).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error) {
	q := r.client.LLMRequestEvent.Query().
		Where(llmEventPredicates(opts)...).
		Order(ent.Desc(llmrequestevent.FieldSequence))
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	events, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}

	records := make([]LLMEventRecord, 0, len(events))
	for _, e := range events {
		records = append(records, toLLMEventRecord(e))
	}
	return records, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error) {
	e, err := r.client.LLMRequestEvent.Get(ctx, id)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	rec := toLLMEventRecord(e)
	return &rec, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error) {
	events, err := r.client.LLMRequestEvent.Query().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage: %w", err)
	}

	byPurpose := make(map[string]*LLMUsageStat)
	latency := make(map[string]int64)
	for _, e := range events {
		st, ok := byPurpose[e.Purpose]
		if !ok {
			st = &LLMUsageStat{Purpose: e.Purpose}
			byPurpose[e.Purpose] = st
		}
		st.Calls++
		if !e.Success {
			st.Failures++
		}
		st.InputTokens += e.InputTokens
		st.OutputTokens += e.OutputTokens
		latency[e.Purpose] += e.LatencyMs
	}

	stats := make([]LLMUsageStat, 0, len(byPurpose))
	for purpose, st := range byPurpose {
		st.AvgLatencyMs = latency[purpose] / int64(st.Calls)
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Purpose < stats[j].Purpose })
	return stats, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsageStat, error) {
	events, err := r.client.LLMRequestEvent.Query().
		Where(llmrequestevent.Success(true)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query model usage: %w", err)
	}

	byModel := make(map[string]*ModelUsageStat)
	for _, e := range events {
		st, ok := byModel[e.Model]
		if !ok {
			st = &ModelUsageStat{Model: e.Model}
			byModel[e.Model] = st
		}
		st.Calls++
		st.InputTokens += e.InputTokens
		st.OutputTokens += e.OutputTokens
	}

	stats := make([]ModelUsageStat, 0, len(byModel))
	for _, st := range byModel {
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Model < stats[j].Model })
	return stats, nil
}

func llmEventPredicates(opts QueryOpts) []predicate.LLMRequestEvent {
	var ps []predicate.LLMRequestEvent
	if opts.After > 0 {
		ps = append(ps, llmrequestevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		ps = append(ps, llmrequestevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		ps = append(ps, llmrequestevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		ps = append(ps, llmrequestevent.TimestampLTE(opts.To))
	}
	return ps
}

func toLLMEventRecord(e *ent.LLMRequestEvent) LLMEventRecord {
	return LLMEventRecord{
		ID:        e.ID,
		Sequence:  e.Sequence,
		Timestamp: e.Timestamp,
		LLMRequestEventData: LLMRequestEventData{
			Provider:     e.Provider,
			Model:        e.Model,
			Purpose:      e.Purpose,
			LessonID:     e.LessonID,
			InputTokens:  e.InputTokens,
			OutputTokens: e.OutputTokens,
			LatencyMs:    e.LatencyMs,
			Success:      e.Success,
			ErrorMessage: e.ErrorMessage,
			RequestBody:  e.RequestBody,
			ResponseBody: e.ResponseBody,
		},
	}
}
