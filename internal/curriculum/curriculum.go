package curriculum

// Lesson is one curriculum unit. Identity is ID.
type Lesson struct {
	ID      string
	Title   string
	Chapter string // short chapter label, e.g. "Chương 1"
}

// Chapter groups lessons. Lesson order is display order.
type Chapter struct {
	ID      string
	Title   string
	Lessons []Lesson
}

// All returns every chapter in display order.
func All() []Chapter {
	return chapters
}

// Lessons returns all lessons flattened in display order.
func Lessons() []Lesson {
	return flat
}

// Find looks up a lesson by ID.
func Find(id string) (Lesson, bool) {
	i, ok := index[id]
	if !ok {
		return Lesson{}, false
	}
	return flat[i], true
}

// First returns the first lesson of the first chapter.
func First() Lesson {
	return flat[0]
}

// Next returns the lesson after id, wrapping to the first lesson.
func Next(id string) Lesson {
	i, ok := index[id]
	if !ok {
		return First()
	}
	return flat[(i+1)%len(flat)]
}

// Prev returns the lesson before id, wrapping to the last lesson.
func Prev(id string) Lesson {
	i, ok := index[id]
	if !ok {
		return First()
	}
	return flat[(i-1+len(flat))%len(flat)]
}

// ChapterOf returns the chapter containing the lesson with the given ID.
func ChapterOf(id string) (Chapter, bool) {
	for _, ch := range chapters {
		for _, l := range ch.Lessons {
			if l.ID == id {
				return ch, true
			}
		}
	}
	return Chapter{}, false
}

var (
	flat  []Lesson
	index map[string]int
)

func init() {
	index = make(map[string]int)
	for _, ch := range chapters {
		for _, l := range ch.Lessons {
			index[l.ID] = len(flat)
			flat = append(flat, l)
		}
	}
}
