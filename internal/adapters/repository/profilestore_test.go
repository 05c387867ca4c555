package repository_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	repository "github.com/Kartik-0-8/buildathon/internal/adapters/repository"
	"github.com/Kartik-0-8/buildathon/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func studentProfile(id string, skills ...string) model.Profile {
	return model.Profile{
		ID:      id,
		Name:    "student " + id,
		Role:    model.RoleStudent,
		Student: &model.StudentProfile{ID: id, Skills: skills, Level: 1, Rating: 1000},
	}
}

func TestShardedStore(t *testing.T) {
	Convey("Given a sharded profile store", t, func() {
		ctx := context.Background()
		store := repository.NewShardedStore(ctx, repository.WithShardCount(4))

		Convey("When a new profile is upserted", func() {
			created, err := store.Upsert(ctx, studentProfile("s1", "Go"))

			Convey("Then it reports creation and can be read back", func() {
				So(err, ShouldBeNil)
				So(created, ShouldBeTrue)

				got, err := store.Get(ctx, "s1")
				So(err, ShouldBeNil)
				So(got.Role, ShouldEqual, model.RoleStudent)
				So(got.Student.Skills, ShouldResemble, []string{"Go"})
			})
		})

		Convey("When the same id is upserted twice", func() {
			_, _ = store.Upsert(ctx, studentProfile("s1", "Go"))
			created, err := store.Upsert(ctx, studentProfile("s1", "Go", "React"))

			Convey("Then the second write replaces and reports no creation", func() {
				So(err, ShouldBeNil)
				So(created, ShouldBeFalse)

				got, _ := store.Get(ctx, "s1")
				So(got.Student.Skills, ShouldResemble, []string{"Go", "React"})

				students, _, _ := store.Count(ctx)
				So(students, ShouldEqual, 1)
			})
		})

		Convey("When a profile changes role on replace", func() {
			_, _ = store.Upsert(ctx, studentProfile("p1"))
			_, err := store.Upsert(ctx, model.Profile{
				ID:           "p1",
				Role:         model.RoleProfessional,
				Professional: &model.ProfessionalProfile{Company: "Acme"},
			})

			Convey("Then the role counters move with it", func() {
				So(err, ShouldBeNil)
				students, _, professionals := store.Count(ctx)
				So(students, ShouldEqual, 0)
				So(professionals, ShouldEqual, 1)
			})
		})

		Convey("When getting an unknown id", func() {
			_, err := store.Get(ctx, "missing")

			Convey("Then ErrNotFound is returned", func() {
				So(err, ShouldEqual, repository.ErrNotFound)
			})
		})

		Convey("When upserting a profile without an id", func() {
			_, err := store.Upsert(ctx, model.Profile{Role: model.RoleStudent, Student: &model.StudentProfile{}})

			Convey("Then ErrEmptyID is returned", func() {
				So(err, ShouldEqual, repository.ErrEmptyID)
			})
		})

		Convey("When upserting a profile without a role", func() {
			_, err := store.Upsert(ctx, model.Profile{ID: "x"})

			Convey("Then ErrRoleUnset is returned", func() {
				So(err, ShouldEqual, repository.ErrRoleUnset)
			})
		})

		Convey("When listing students", func() {
			_, _ = store.Upsert(ctx, studentProfile("s3", "SQL"))
			_, _ = store.Upsert(ctx, studentProfile("s1", "Go"))
			_, _ = store.Upsert(ctx, studentProfile("s2", "React"))
			_, _ = store.Upsert(ctx, model.Profile{
				ID:           "pro-1",
				Role:         model.RoleProfessional,
				Professional: &model.ProfessionalProfile{},
			})

			students, err := store.Students(ctx)

			Convey("Then only students come back, ordered by id", func() {
				So(err, ShouldBeNil)
				So(len(students), ShouldEqual, 3)
				So(students[0].ID, ShouldEqual, "s1")
				So(students[1].ID, ShouldEqual, "s2")
				So(students[2].ID, ShouldEqual, "s3")
			})
		})

		Convey("When a caller mutates a returned snapshot", func() {
			original := studentProfile("s1", "Go")
			_, _ = store.Upsert(ctx, original)

			got, _ := store.Get(ctx, "s1")
			got.Student.Skills[0] = "mutated"

			// mutating the input after upsert must not leak either
			original.Student.Skills[0] = "also mutated"

			Convey("Then the stored profile is unaffected", func() {
				again, _ := store.Get(ctx, "s1")
				So(again.Student.Skills, ShouldResemble, []string{"Go"})
			})
		})

		Convey("When many goroutines upsert concurrently", func() {
			const writers = 8
			const perWriter = 50

			var wg sync.WaitGroup
			for w := 0; w < writers; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					for i := 0; i < perWriter; i++ {
						id := fmt.Sprintf("s-%d-%d", w, i)
						_, _ = store.Upsert(ctx, studentProfile(id, "Go"))
					}
				}(w)
			}
			wg.Wait()

			Convey("Then every profile lands exactly once", func() {
				students, _, _ := store.Count(ctx)
				So(students, ShouldEqual, writers*perWriter)

				listed, err := store.Students(ctx)
				So(err, ShouldBeNil)
				So(len(listed), ShouldEqual, writers*perWriter)
			})
		})
	})
}
