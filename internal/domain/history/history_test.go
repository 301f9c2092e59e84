package history_test

import (
	"testing"

	"github.com/okian/aimsight/internal/domain/history"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRingBounds(t *testing.T) {
	Convey("Given a ring buffer with capacity 3", t, func() {
		r := history.New[int](3)

		Convey("When fewer entries than capacity are pushed", func() {
			r.Push(1)
			r.Push(2)

			Convey("Then all entries are retained in order", func() {
				So(r.Len(), ShouldEqual, 2)
				So(r.All(), ShouldResemble, []int{1, 2})
				last, ok := r.Last()
				So(ok, ShouldBeTrue)
				So(last, ShouldEqual, 2)
			})
		})

		Convey("When more entries than capacity are pushed", func() {
			for i := 1; i <= 5; i++ {
				r.Push(i)
			}

			Convey("Then the oldest entries are evicted first", func() {
				So(r.Len(), ShouldEqual, 3)
				So(r.All(), ShouldResemble, []int{3, 4, 5})
			})

			Convey("And the length never exceeds capacity", func() {
				So(r.Len(), ShouldBeLessThanOrEqualTo, r.Cap())
			})
		})

		Convey("When empty", func() {
			Convey("Then Last reports absence", func() {
				_, ok := r.Last()
				So(ok, ShouldBeFalse)
			})

			Convey("And Tail returns nil", func() {
				So(r.Tail(5), ShouldBeNil)
			})
		})
	})
}

func TestRingTail(t *testing.T) {
	Convey("Given a ring buffer holding 1..10 with capacity 8", t, func() {
		r := history.New[int](8)
		for i := 1; i <= 10; i++ {
			r.Push(i)
		}

		Convey("When asking for the last 3 entries", func() {
			So(r.Tail(3), ShouldResemble, []int{8, 9, 10})
		})

		Convey("When asking for more entries than stored", func() {
			So(r.Tail(100), ShouldResemble, []int{3, 4, 5, 6, 7, 8, 9, 10})
		})
	})
}

func TestRingReverseEach(t *testing.T) {
	Convey("Given a ring buffer holding 1..4", t, func() {
		r := history.New[int](10)
		for i := 1; i <= 4; i++ {
			r.Push(i)
		}

		Convey("When scanning in reverse", func() {
			var seen []int
			r.ReverseEach(func(v int) bool {
				seen = append(seen, v)
				return true
			})
			So(seen, ShouldResemble, []int{4, 3, 2, 1})
		})

		Convey("When stopping the scan early", func() {
			var seen []int
			r.ReverseEach(func(v int) bool {
				seen = append(seen, v)
				return v != 3
			})
			So(seen, ShouldResemble, []int{4, 3})
		})
	})
}
