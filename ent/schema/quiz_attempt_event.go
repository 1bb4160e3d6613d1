package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// QuizAttemptEvent records a submitted quiz.
type QuizAttemptEvent struct {
	ent.Schema
}

func (QuizAttemptEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (QuizAttemptEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("attempt_id").
			Unique().
			Immutable(),
		field.String("lesson_id"),
		field.String("lesson_title"),
		field.Int("score").
			NonNegative(),
		field.Int("total").
			NonNegative(),
	}
}

func (QuizAttemptEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("lesson_id"),
	}
}
