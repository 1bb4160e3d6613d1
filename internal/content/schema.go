package content

import "github.com/website1975/vatly12CTST/internal/llm"

// QuizSchema is the shape of a generated question set.
var QuizSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "Multiple-choice questions for a physics lesson",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"id":       map[string]any{"type": "integer"},
				"question": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"correctAnswer": map[string]any{
					"type":        "integer",
					"description": "Index of the correct answer (0-3)",
				},
				"explanation": map[string]any{"type": "string"},
			},
			"required": []any{"id", "question", "options", "correctAnswer", "explanation"},
		},
	},
}

// SimulationSchema is the shape of a generated virtual experiment.
// imageUrl is requested but never used.
var SimulationSchema = &llm.Schema{
	Name:        "simulation",
	Description: "A virtual experiment scenario for a physics lesson",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"scenario": map[string]any{
				"type":        "string",
				"description": "Step by step description of the simulation flow",
			},
			"imageUrl": map[string]any{
				"type":        "string",
				"description": "A short description of an illustrative image for this simulation",
			},
		},
		"required": []any{"title", "description", "scenario"},
	},
}
