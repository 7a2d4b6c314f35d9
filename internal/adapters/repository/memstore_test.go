package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/okian/mergington/internal/domain/model"
	"github.com/okian/mergington/internal/domain/seed"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemStore_List(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store seeded with the default catalog", t, func() {
		store := NewMemStore(ctx, WithCatalog(seed.Default()))

		Convey("Then every activity is listed within capacity", func() {
			list := store.List(ctx)
			So(list, ShouldHaveLength, 9)
			So(store.Count(ctx), ShouldEqual, 9)
			for _, a := range list {
				So(len(a.Participants), ShouldBeLessThanOrEqualTo, a.MaxParticipants)
			}
		})

		Convey("Then mutating a listing does not leak into the store", func() {
			list := store.List(ctx)
			chess := list["Chess Club"]
			chess.Participants[0] = "intruder@mergington.edu"
			delete(list, "Art Club")

			again := store.List(ctx)
			So(again["Chess Club"].Participants[0], ShouldEqual, "michael@mergington.edu")
			So(again, ShouldContainKey, "Art Club")
		})

		Convey("Then Get returns a single activity or not found", func() {
			a, err := store.Get(ctx, "Debate Team")
			So(err, ShouldBeNil)
			So(a.MaxParticipants, ShouldEqual, 16)

			_, err = store.Get(ctx, "Nonexistent Club")
			So(err, ShouldEqual, ErrActivityNotFound)
		})
	})

	Convey("Given a store without options", t, func() {
		store := NewMemStore(ctx)

		Convey("Then it is empty", func() {
			So(store.List(ctx), ShouldBeEmpty)
			So(store.Count(ctx), ShouldEqual, 0)
		})
	})
}

func TestMemStore_Signup(t *testing.T) {
	ctx := context.Background()

	Convey("Given a seeded store", t, func() {
		store := NewMemStore(ctx, WithCatalog(seed.Default()))

		Convey("When a new student signs up", func() {
			err := store.Signup(ctx, "Chess Club", "newstudent@mergington.edu")

			Convey("Then they are appended exactly once", func() {
				So(err, ShouldBeNil)
				chess, _ := store.Get(ctx, "Chess Club")
				So(chess.Participants, ShouldResemble, []string{
					"michael@mergington.edu", "daniel@mergington.edu", "newstudent@mergington.edu",
				})
			})
		})

		Convey("When the same student signs up twice", func() {
			So(store.Signup(ctx, "Chess Club", "twice@mergington.edu"), ShouldBeNil)
			err := store.Signup(ctx, "Chess Club", "twice@mergington.edu")

			Convey("Then the second attempt conflicts and nothing changes", func() {
				So(err, ShouldEqual, ErrAlreadySignedUp)
				chess, _ := store.Get(ctx, "Chess Club")
				So(chess.Participants, ShouldHaveLength, 3)
			})
		})

		Convey("When the activity does not exist", func() {
			err := store.Signup(ctx, "Nonexistent Club", "test@mergington.edu")

			Convey("Then not found is returned", func() {
				So(err, ShouldEqual, ErrActivityNotFound)
			})
		})

		Convey("When Chess Club is filled to capacity", func() {
			for i := 0; i < 10; i++ {
				So(store.Signup(ctx, "Chess Club", fmt.Sprintf("student%d@mergington.edu", i)), ShouldBeNil)
			}
			err := store.Signup(ctx, "Chess Club", "overflow@mergington.edu")

			Convey("Then the 13th signup reports a full activity", func() {
				So(err, ShouldEqual, ErrActivityFull)
				chess, _ := store.Get(ctx, "Chess Club")
				So(chess.Participants, ShouldHaveLength, 12)
			})

			Convey("Then an enrolled student is reported as duplicate before full", func() {
				So(store.Signup(ctx, "Chess Club", "michael@mergington.edu"), ShouldEqual, ErrAlreadySignedUp)
			})
		})

		Convey("When a listing was taken before a signup", func() {
			before := store.List(ctx)
			So(store.Signup(ctx, "Art Club", "late@mergington.edu"), ShouldBeNil)

			Convey("Then the earlier listing is unchanged", func() {
				So(before["Art Club"].Participants, ShouldHaveLength, 2)
			})
		})
	})
}

func TestMemStore_Remove(t *testing.T) {
	ctx := context.Background()

	Convey("Given a seeded store", t, func() {
		store := NewMemStore(ctx, WithCatalog(seed.Default()))

		Convey("When removing an enrolled student", func() {
			err := store.Remove(ctx, "Soccer Club", "maya@mergington.edu")

			Convey("Then they disappear and the order of the rest is kept", func() {
				So(err, ShouldBeNil)
				soccer, _ := store.Get(ctx, "Soccer Club")
				So(soccer.Participants, ShouldResemble, []string{"david@mergington.edu", "lucas@mergington.edu"})
			})
		})

		Convey("When removing from an unknown activity", func() {
			err := store.Remove(ctx, "Nonexistent Club", "test@mergington.edu")

			Convey("Then activity not found is returned", func() {
				So(err, ShouldEqual, ErrActivityNotFound)
			})
		})

		Convey("When removing a student who is not enrolled", func() {
			err := store.Remove(ctx, "Chess Club", "nonexistent@mergington.edu")

			Convey("Then participant not found is returned", func() {
				So(err, ShouldEqual, ErrParticipantNotFound)
			})
		})

		Convey("When signing up and then removing", func() {
			before, _ := store.Get(ctx, "Programming Class")
			So(store.Signup(ctx, "Programming Class", "newcoder@mergington.edu"), ShouldBeNil)
			So(store.Remove(ctx, "Programming Class", "newcoder@mergington.edu"), ShouldBeNil)

			Convey("Then the roster is back where it started", func() {
				after, _ := store.Get(ctx, "Programming Class")
				So(after.Participants, ShouldResemble, before.Participants)
			})
		})

		Convey("When a full activity frees a spot", func() {
			for i := 0; i < 14; i++ {
				So(store.Signup(ctx, "Debate Team", fmt.Sprintf("debater%d@mergington.edu", i)), ShouldBeNil)
			}
			So(store.Signup(ctx, "Debate Team", "overflow@mergington.edu"), ShouldEqual, ErrActivityFull)
			So(store.Remove(ctx, "Debate Team", "william@mergington.edu"), ShouldBeNil)

			Convey("Then the waiting student can join", func() {
				So(store.Signup(ctx, "Debate Team", "overflow@mergington.edu"), ShouldBeNil)
			})
		})
	})
}

func TestMemStore_Replace(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store with modified rosters", t, func() {
		store := NewMemStore(ctx, WithCatalog(seed.Default()))
		So(store.Signup(ctx, "Chess Club", "extra@mergington.edu"), ShouldBeNil)
		So(store.Remove(ctx, "Art Club", "grace@mergington.edu"), ShouldBeNil)

		Convey("When replacing with the seed catalog", func() {
			store.Replace(ctx, seed.Default())

			Convey("Then the seed roster is restored", func() {
				So(store.List(ctx), ShouldResemble, seed.Default())
			})
		})

		Convey("When replacing with a smaller catalog", func() {
			c := model.Catalog{"Robotics Club": {MaxParticipants: 2, Participants: []string{}}}
			store.Replace(ctx, c)
			c["Robotics Club"] = model.Activity{MaxParticipants: 99}

			Convey("Then only the new activities exist and the argument was copied", func() {
				So(store.Count(ctx), ShouldEqual, 1)
				r, err := store.Get(ctx, "Robotics Club")
				So(err, ShouldBeNil)
				So(r.MaxParticipants, ShouldEqual, 2)
				So(errors.Is(store.Signup(ctx, "Chess Club", "a@x"), ErrActivityNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestMemStore_ConcurrentSignups(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, WithCatalog(seed.Default()))

	// Chess Club has 2 of 12 seats taken; 50 students race for the remaining 10.
	var wg sync.WaitGroup
	var ok, full atomic.Int32
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			switch err := store.Signup(ctx, "Chess Club", fmt.Sprintf("racer%d@mergington.edu", i)); err {
			case nil:
				ok.Add(1)
			case ErrActivityFull:
				full.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if got := ok.Load(); got != 10 {
		t.Errorf("expected 10 successful signups, got %d", got)
	}
	if got := full.Load(); got != 40 {
		t.Errorf("expected 40 full rejections, got %d", got)
	}
	chess, _ := store.Get(ctx, "Chess Club")
	if len(chess.Participants) != chess.MaxParticipants {
		t.Errorf("expected %d participants, got %d", chess.MaxParticipants, len(chess.Participants))
	}
}

func TestMemStore_ConcurrentDuplicateSignups(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore(ctx, WithCatalog(seed.Default()))

	var wg sync.WaitGroup
	var ok atomic.Int32
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.Signup(ctx, "Gym Class", "same@mergington.edu") == nil {
				ok.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := ok.Load(); got != 1 {
		t.Errorf("expected exactly one successful signup, got %d", got)
	}
}
