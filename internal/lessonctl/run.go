package lessonctl

import (
	"context"

	"github.com/website1975/vatly12CTST/internal/content"
	"github.com/website1975/vatly12CTST/internal/curriculum"
)

// Generator produces lesson content. *content.Client implements it.
type Generator interface {
	GenerateTheory(ctx context.Context, lesson curriculum.Lesson) string
	GenerateQuiz(ctx context.Context, lesson curriculum.Lesson) []content.QuizQuestion
	GenerateSimulation(ctx context.Context, lesson curriculum.Lesson) *content.SimulationData
}

// Run performs l with g. It blocks for the duration of the remote call.
func Run(ctx context.Context, g Generator, l Load) Result {
	r := Result{Load: l}
	switch l.Kind {
	case KindTheory:
		r.Theory = g.GenerateTheory(ctx, l.Lesson)
	case KindQuiz:
		r.Quiz = g.GenerateQuiz(ctx, l.Lesson)
	case KindSimulation:
		r.Simulation = g.GenerateSimulation(ctx, l.Lesson)
	}
	return r
}
