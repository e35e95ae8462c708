package studio

import (
	"fmt"
	"testing"
)

func TestNoticeQueueFIFO(t *testing.T) {
	q := NewNoticeQueue(0)

	if _, ok := q.Pop(); ok {
		t.Fatal("Pop on empty queue reported a notice")
	}

	q.Push(Notice{Text: "first"})
	q.Push(Notice{Text: "second", IsError: true})

	n, ok := q.Pop()
	if !ok || n.Text != "first" || n.IsError {
		t.Errorf("Pop() = %+v, %v, want first", n, ok)
	}
	n, ok = q.Pop()
	if !ok || n.Text != "second" || !n.IsError {
		t.Errorf("Pop() = %+v, %v, want second with error flag", n, ok)
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
}

func TestNoticeQueueDropsOldestWhenFull(t *testing.T) {
	q := NewNoticeQueue(3)
	for i := 0; i < 5; i++ {
		q.Push(Notice{Text: fmt.Sprintf("n%d", i)})
	}

	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}
	for _, want := range []string{"n2", "n3", "n4"} {
		n, ok := q.Pop()
		if !ok || n.Text != want {
			t.Errorf("Pop() = %+v, want %q", n, want)
		}
	}
}
