package feed

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTracker(t *testing.T) {
	Convey("Given a tracker", t, func() {
		calls := &transitions{}
		prefetches := 0
		tracker := NewTracker(calls, func() { prefetches++ }, 2)

		Convey("There is no active index while nothing is loaded", func() {
			So(tracker.Active(), ShouldEqual, None)
			index, changed := tracker.Recompute(Visibility{Height: 1000, Slots: stacked(3, 500, 0)})
			So(index, ShouldEqual, None)
			So(changed, ShouldBeFalse)
		})

		Convey("The first records make index 0 active", func() {
			tracker.SetCount(3)
			So(tracker.Active(), ShouldEqual, 0)
			So(calls.calls, ShouldResemble, []string{"activate 0"})
		})

		Convey("With three records loaded", func() {
			tracker.SetCount(3)
			calls.calls = nil

			Convey("The slot straddling the midpoint wins, last match first", func() {
				v := Visibility{Height: 1000, Slots: []Slot{
					{Index: 0, Rect: Rect{Top: 0, Bottom: 500}},
					{Index: 1, Rect: Rect{Top: 500, Bottom: 1000}},
					{Index: 2, Rect: Rect{Top: 1000, Bottom: 1500}},
				}}
				index, changed := tracker.Recompute(v)
				So(index, ShouldEqual, 1)
				So(changed, ShouldBeTrue)
				So(calls.calls, ShouldResemble, []string{"pause 0", "activate 1"})
			})

			Convey("No straddling slot keeps the current one", func() {
				v := Visibility{Height: 1000, Slots: []Slot{
					{Index: 1, Rect: Rect{Top: 600, Bottom: 900}},
				}}
				index, changed := tracker.Recompute(v)
				So(index, ShouldEqual, 0)
				So(changed, ShouldBeFalse)
				So(calls.calls, ShouldBeEmpty)
			})

			Convey("Repeating the same layout does not transition again", func() {
				v := Visibility{Height: 1000, Slots: stacked(3, 1000, 1000)}
				tracker.Recompute(v)
				calls.calls = nil
				_, changed := tracker.Recompute(v)
				So(changed, ShouldBeFalse)
				So(calls.calls, ShouldBeEmpty)
			})

			Convey("Slots outside the loaded range are ignored", func() {
				v := Visibility{Height: 1000, Slots: []Slot{{Index: 7, Rect: Rect{Top: 0, Bottom: 1000}}}}
				_, changed := tracker.Recompute(v)
				So(changed, ShouldBeFalse)
			})
		})

		Convey("With five records loaded", func() {
			tracker.SetCount(5)

			Convey("Moving to index 2 does not prefetch", func() {
				tracker.Recompute(Visibility{Height: 1000, Slots: stacked(5, 1000, 2000)})
				So(tracker.Active(), ShouldEqual, 2)
				So(prefetches, ShouldEqual, 0)
			})

			Convey("Moving to index 3 prefetches", func() {
				tracker.Recompute(Visibility{Height: 1000, Slots: stacked(5, 1000, 3000)})
				So(tracker.Active(), ShouldEqual, 3)
				So(prefetches, ShouldEqual, 1)
			})

			Convey("OnChange sees every transition", func() {
				var seen [][2]int
				tracker.OnChange(func(prev, next int) { seen = append(seen, [2]int{prev, next}) })
				tracker.Recompute(Visibility{Height: 1000, Slots: stacked(5, 1000, 1000)})
				tracker.Recompute(Visibility{Height: 1000, Slots: stacked(5, 1000, 4000)})
				So(seen, ShouldResemble, [][2]int{{0, 1}, {1, 4}})
			})

			Convey("Shrinking the record set clamps the active index", func() {
				tracker.Recompute(Visibility{Height: 1000, Slots: stacked(5, 1000, 4000)})
				tracker.SetCount(2)
				So(tracker.Active(), ShouldEqual, 1)
				tracker.SetCount(0)
				So(tracker.Active(), ShouldEqual, None)
			})
		})

		Convey("Watch recomputes on every notification", func() {
			tracker.SetCount(3)
			o := &observer{}
			unsubscribe := tracker.Watch(o)

			o.emit(Visibility{Height: 1000, Slots: stacked(3, 1000, 2000)})
			So(tracker.Active(), ShouldEqual, 2)

			unsubscribe()
			o.emit(Visibility{Height: 1000, Slots: stacked(3, 1000, 0)})
			So(tracker.Active(), ShouldEqual, 2)
		})
	})
}
