package fusion

import (
	"testing"
	"time"

	"github.com/matzehuels/floatsheet/pkg/core/layout"
)

func TestOffsetFeedOrderAndUnsubscribe(t *testing.T) {
	var f OffsetFeed
	var got []string

	unA := f.Subscribe(func(Change) { got = append(got, "a") })
	f.Subscribe(func(Change) { got = append(got, "b") })
	if f.Count() != 2 {
		t.Fatalf("count = %d, want 2", f.Count())
	}

	f.Publish(Change{New: 1})
	unA()
	unA()
	f.Publish(Change{New: 2})

	want := []string{"a", "b", "b"}
	if len(got) != len(want) {
		t.Fatalf("deliveries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("deliveries = %v, want %v", got, want)
		}
	}
	if f.Count() != 1 {
		t.Errorf("count = %d, want 1", f.Count())
	}
}

func TestOffsetFeedUnsubscribeDuringPublish(t *testing.T) {
	var f OffsetFeed
	var unB func()
	calls := 0

	f.Subscribe(func(Change) { unB() })
	unB = f.Subscribe(func(Change) { calls++ })

	f.Publish(Change{New: 1})
	if calls != 0 {
		t.Errorf("removed subscriber called %d times", calls)
	}
}

func TestRegionPublishesOnlyOnChange(t *testing.T) {
	r := NewRegion(layout.Rect{Height: 100}, 500)
	var changes []Change
	r.Subscribe(func(c Change) { changes = append(changes, c) })

	r.SetContentOffset(0)
	r.SetContentOffset(30)
	r.SetContentOffset(30)

	if len(changes) != 1 || changes[0] != (Change{Old: 0, New: 30}) {
		t.Errorf("changes = %v, want one 0->30", changes)
	}
}

func TestRegionScrollByClamps(t *testing.T) {
	r := NewRegion(layout.Rect{Height: 100}, 250)
	r.ScrollBy(500)
	if r.ContentOffset() != 150 {
		t.Errorf("offset = %v, want max 150", r.ContentOffset())
	}
	r.ScrollBy(-500)
	if r.ContentOffset() != 0 {
		t.Errorf("offset = %v, want 0", r.ContentOffset())
	}
}

func TestRegionShortContentCannotScroll(t *testing.T) {
	r := NewRegion(layout.Rect{Height: 300}, 120)
	if r.MaxOffset() != 0 {
		t.Errorf("max offset = %v, want 0", r.MaxOffset())
	}
	r.ScrollBy(40)
	if r.ContentOffset() != 0 {
		t.Errorf("offset = %v, want 0", r.ContentOffset())
	}
}

func TestRegionDragAndCoast(t *testing.T) {
	r := NewRegion(layout.Rect{Height: 100}, 2000)
	r.BeginDrag()
	r.DragBy(-50)
	if r.ContentOffset() != 50 {
		t.Fatalf("offset = %v, want 50", r.ContentOffset())
	}
	if !IsScrolling(r) {
		t.Error("region should be scrolling during a drag")
	}

	r.EndDrag(-800)
	if !r.IsDecelerating() || IsScrolling(r) {
		t.Fatalf("decelerating=%v scrolling=%v, want coasting", r.IsDecelerating(), IsScrolling(r))
	}

	prev := r.ContentOffset()
	for i := 0; i < 500 && r.Step(16*time.Millisecond); i++ {
		if r.ContentOffset() < prev {
			t.Fatalf("coasting reversed at step %d", i)
		}
		prev = r.ContentOffset()
	}
	if r.IsDecelerating() || r.IsDragging() {
		t.Error("region should come to rest")
	}
	if r.ContentOffset() <= 50 {
		t.Errorf("offset = %v, want coasted past 50", r.ContentOffset())
	}
}

func TestRegionSpringsBackFromTop(t *testing.T) {
	r := NewRegion(layout.Rect{Height: 100}, 2000)
	r.BeginDrag()
	r.DragBy(40)
	if r.ContentOffset() != -20 {
		t.Fatalf("offset = %v, want -20 with resistance", r.ContentOffset())
	}
	r.EndDrag(0)
	if !r.IsDecelerating() {
		t.Fatal("overscrolled region should decelerate back")
	}
	for i := 0; i < 500 && r.Step(16*time.Millisecond); i++ {
	}
	if r.ContentOffset() != 0 {
		t.Errorf("offset = %v, want 0", r.ContentOffset())
	}
}

func TestRegionInterrupt(t *testing.T) {
	r := NewRegion(layout.Rect{Height: 100}, 2000)
	r.BeginDrag()
	r.DragBy(-30)
	r.EndDrag(-1000)
	r.Interrupt()
	if r.IsDecelerating() || r.IsDragging() || r.IsTracking() {
		t.Error("interrupt should stop all scrolling")
	}
	if r.Step(16 * time.Millisecond) {
		t.Error("interrupted region should not step")
	}
}

func TestRegionSetContentHeightClamps(t *testing.T) {
	r := NewRegion(layout.Rect{Height: 100}, 500)
	r.ScrollBy(400)
	r.SetContentHeight(200)
	if r.ContentOffset() != 100 {
		t.Errorf("offset = %v, want clamped 100", r.ContentOffset())
	}
}
