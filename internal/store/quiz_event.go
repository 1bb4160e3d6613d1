package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/website1975/vatly12CTST/ent"
	"github.com/website1975/vatly12CTST/ent/predicate"
	"github.com/website1975/vatly12CTST/ent/quizattemptevent"
)

func (r *eventRepo) AppendQuizAttempt(ctx context.Context, data QuizAttemptData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.QuizAttemptEvent.Create().
		SetSequence(seqNum).
		SetAttemptID(data.AttemptID).
		SetLessonID(data.LessonID).
		SetLessonTitle(data.LessonTitle).
		SetScore(data.Score).
		SetTotal(data.Total).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save quiz attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryQuizAttempts(ctx context.Context, opts QueryOpts) ([]QuizAttemptRecord, error) {
	q := r.client.QuizAttemptEvent.Query().
		Where(quizAttemptPredicates(opts)...).
		Order(ent.Desc(quizattemptevent.FieldSequence))
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	events, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query quiz attempts: %w", err)
	}

	records := make([]QuizAttemptRecord, 0, len(events))
	for _, e := range events {
		records = append(records, QuizAttemptRecord{
			ID:        e.ID,
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
			QuizAttemptData: QuizAttemptData{
				AttemptID:   e.AttemptID,
				LessonID:    e.LessonID,
				LessonTitle: e.LessonTitle,
				Score:       e.Score,
				Total:       e.Total,
			},
		})
	}
	return records, nil
}

func (r *eventRepo) QuizStatsByLesson(ctx context.Context) ([]LessonQuizStat, error) {
	events, err := r.client.QuizAttemptEvent.Query().
		Order(ent.Asc(quizattemptevent.FieldSequence)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query quiz stats: %w", err)
	}

	type acc struct {
		stat     LessonQuizStat
		correct  int
		answered int
	}
	byLesson := make(map[string]*acc)
	for _, e := range events {
		a, ok := byLesson[e.LessonID]
		if !ok {
			a = &acc{stat: LessonQuizStat{LessonID: e.LessonID}}
			byLesson[e.LessonID] = a
		}
		a.stat.LessonTitle = e.LessonTitle
		a.stat.Attempts++
		if a.stat.Attempts == 1 || e.Score > a.stat.BestScore {
			a.stat.BestScore = e.Score
			a.stat.Total = e.Total
		}
		a.correct += e.Score
		a.answered += e.Total
	}

	stats := make([]LessonQuizStat, 0, len(byLesson))
	for _, a := range byLesson {
		if a.answered > 0 {
			a.stat.Accuracy = float64(a.correct) / float64(a.answered)
		}
		stats = append(stats, a.stat)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].LessonID < stats[j].LessonID })
	return stats, nil
}

func quizAttemptPredicates(opts QueryOpts) []predicate.QuizAttemptEvent {
	var ps []predicate.QuizAttemptEvent
	if opts.After > 0 {
		ps = append(ps, quizattemptevent.SequenceGT(opts.After))
	}
	if opts.Before > 0 {
		ps = append(ps, quizattemptevent.SequenceLT(opts.Before))
	}
	if !opts.From.IsZero() {
		ps = append(ps, quizattemptevent.TimestampGTE(opts.From))
	}
	if !opts.To.IsZero() {
		ps = append(ps, quizattemptevent.TimestampLTE(opts.To))
	}
	return ps
}
