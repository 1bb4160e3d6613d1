package curriculum

import "testing"

func TestAllChapters(t *testing.T) {
	chs := All()
	if len(chs) != 4 {
		t.Fatalf("chapters = %d, want 4", len(chs))
	}
	if got := len(Lessons()); got != 14 {
		t.Errorf("lessons = %d, want 14", got)
	}
}

func TestUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, l := range Lessons() {
		if seen[l.ID] {
			t.Errorf("duplicate lesson id %q", l.ID)
		}
		seen[l.ID] = true
		if l.Title == "" || l.Chapter == "" {
			t.Errorf("lesson %q missing title or chapter", l.ID)
		}
	}
}

func TestFind(t *testing.T) {
	l, ok := Find("l6")
	if !ok {
		t.Fatal("expected l6 to exist")
	}
	if l.Title != "Bài 6: Định luật Boyle. Định luật Charles" {
		t.Errorf("title = %q", l.Title)
	}
	if l.Chapter != "Chương 2" {
		t.Errorf("chapter = %q", l.Chapter)
	}
	if _, ok := Find("nope"); ok {
		t.Error("expected unknown id to be missing")
	}
}

func TestNextPrevWrap(t *testing.T) {
	if got := Next("l14").ID; got != "l1" {
		t.Errorf("Next(l14) = %q, want l1", got)
	}
	if got := Prev("l1").ID; got != "l14" {
		t.Errorf("Prev(l1) = %q, want l14", got)
	}
	if got := Next("l4").ID; got != "l5" {
		t.Errorf("Next(l4) = %q, want l5", got)
	}
}

func TestChapterOf(t *testing.T) {
	ch, ok := ChapterOf("l11")
	if !ok || ch.ID != "chap3" {
		t.Errorf("ChapterOf(l11) = %q, %v", ch.ID, ok)
	}
}
