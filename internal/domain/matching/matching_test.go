package matching_test

import (
	"testing"

	"github.com/Kartik-0-8/buildathon/internal/domain/matching"
	"github.com/Kartik-0-8/buildathon/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func student(skills, interests []string, level, rating int) model.StudentProfile {
	return model.StudentProfile{
		Skills:    skills,
		Interests: interests,
		Level:     level,
		Rating:    rating,
	}
}

func TestMatcher_PeerScore(t *testing.T) {
	Convey("Given a matcher with canonical weights", t, func() {
		m := matching.NewMatcher()

		Convey("When a student is scored against themselves", func() {
			p := student([]string{"React", "Node"}, []string{"AI", "FinTech"}, 4, 1450)

			Convey("Then the score is exactly 100", func() {
				So(m.PeerScore(p, p), ShouldEqual, 100)
			})
		})

		Convey("When two students share nothing at all", func() {
			a := student([]string{"React"}, []string{"AI"}, 2, 1000)
			b := student([]string{"Rust"}, []string{"Gaming"}, 5, 1600)

			Convey("Then disjoint sets, 3 levels apart and 500+ rating apart score 0", func() {
				So(m.PeerScore(a, b), ShouldEqual, 0)
			})
		})

		Convey("When scoring the documented reference pair", func() {
			current := student([]string{"React", "Node"}, []string{"AI"}, 4, 1450)
			candidate := student([]string{"React", "Python"}, []string{"AI", "FinTech"}, 4, 1450)

			Convey("Then 22.5 + 25 + 15 + 15 rounds half away from zero to 78", func() {
				So(m.PeerScore(current, candidate), ShouldEqual, 78)
			})
		})

		Convey("When the two profiles have different skill counts", func() {
			a := student([]string{"Go"}, nil, 1, 1000)
			b := student([]string{"Go", "React", "SQL", "Docker"}, nil, 1, 1000)

			Convey("Then the score is asymmetric because the viewer's count is the denominator", func() {
				So(m.PeerScore(a, b), ShouldNotEqual, m.PeerScore(b, a))
				So(m.PeerScore(a, b), ShouldBeGreaterThan, m.PeerScore(b, a))
			})
		})

		Convey("When the current student has no skills", func() {
			empty := student(nil, []string{"AI"}, 1, 1000)
			other := student([]string{"Go"}, []string{"AI"}, 1, 1000)

			Convey("Then the skill sub-score is zero, not a division error", func() {
				// interests 25 + level 15 + rating 15
				So(m.PeerScore(empty, other), ShouldEqual, 55)
			})
		})

		Convey("When level and rating are absent", func() {
			a := student([]string{"Go"}, nil, 0, 0)
			b := student([]string{"Go"}, nil, 1, 1000)

			Convey("Then defaults (level 1, rating 1000) make the pair identical", func() {
				So(m.PeerScore(a, b), ShouldEqual, m.PeerScore(b, b))
			})
		})

		Convey("When skill case differs between profiles", func() {
			a := student([]string{"react", " node "}, []string{"ai"}, 1, 1000)
			b := student([]string{"React", "Node"}, []string{"AI"}, 1, 1000)

			Convey("Then normalized comparison still counts the overlap", func() {
				So(m.PeerScore(a, b), ShouldEqual, 100)
			})
		})

		Convey("When level proximity decays", func() {
			base := student([]string{"Go"}, []string{"AI"}, 5, 1000)

			Convey("Then each level apart costs 5 points down to zero at 3 levels", func() {
				oneApart := student([]string{"Go"}, []string{"AI"}, 4, 1000)
				threeApart := student([]string{"Go"}, []string{"AI"}, 2, 1000)
				So(m.PeerScore(base, oneApart), ShouldEqual, 95)
				So(m.PeerScore(base, threeApart), ShouldEqual, 85)
			})
		})

		Convey("When rating proximity decays", func() {
			base := student([]string{"Go"}, []string{"AI"}, 1, 1500)

			Convey("Then 250 apart keeps half the rating bonus", func() {
				halfway := student([]string{"Go"}, []string{"AI"}, 1, 1250)
				// 45 + 25 + 15 + 7.5 rounds to 93 (half away from zero)
				So(m.PeerScore(base, halfway), ShouldEqual, 93)
			})

			Convey("And 500 or more apart yields no rating bonus", func() {
				far := student([]string{"Go"}, []string{"AI"}, 1, 2100)
				So(m.PeerScore(base, far), ShouldEqual, 85)
			})
		})

		Convey("When scoring arbitrary degenerate pairs", func() {
			pairs := []model.StudentProfile{
				student(nil, nil, 0, 0),
				student([]string{}, []string{}, -3, -50),
				student([]string{"Go", "Go", "go"}, []string{""}, 99, 4000),
			}

			Convey("Then every score stays within [0,100]", func() {
				for _, a := range pairs {
					for _, b := range pairs {
						score := m.PeerScore(a, b)
						So(score, ShouldBeGreaterThanOrEqualTo, 0)
						So(score, ShouldBeLessThanOrEqualTo, 100)
					}
				}
			})
		})

		Convey("When inputs are scored", func() {
			a := student([]string{"React", "Node"}, []string{"AI"}, 4, 1450)
			b := student([]string{"React"}, []string{"AI"}, 4, 1450)
			skillsBefore := append([]string(nil), a.Skills...)

			m.PeerScore(a, b)

			Convey("Then the inputs are never mutated", func() {
				So(a.Skills, ShouldResemble, skillsBefore)
			})
		})
	})
}

func TestMatcher_HiringScore(t *testing.T) {
	Convey("Given a matcher with canonical weights", t, func() {
		m := matching.NewMatcher()

		Convey("When the professional has no requirement", func() {
			anyStudent := student([]string{"Go"}, []string{"AI"}, 5, 1400)

			Convey("Then the score is zero for every candidate", func() {
				So(m.HiringScore(nil, anyStudent), ShouldEqual, 0)
			})
		})

		Convey("When the candidate satisfies every criterion", func() {
			req := &model.HiringRequirement{
				RequiredSkills:   []string{"React", "Node.js"},
				Domain:           "fintech",
				ExperienceNeeded: 3,
			}
			candidate := student(
				[]string{"React", "Node.js", "SQL"},
				[]string{"fintech", "ai"},
				4, 0,
			)

			Convey("Then 65 + 20 + 15 makes a perfect 100", func() {
				So(m.HiringScore(req, candidate), ShouldEqual, 100)
			})
		})

		Convey("When the requirement lists no skills", func() {
			req := &model.HiringRequirement{Domain: "ai", ExperienceNeeded: 1}
			candidate := student([]string{"Go"}, []string{"AI"}, 2, 0)

			Convey("Then the skills sub-score is zero, no partial credit", func() {
				// domain 20 + experience 15
				So(m.HiringScore(req, candidate), ShouldEqual, 35)
			})
		})

		Convey("When the domain matches as a substring either way", func() {
			candidate := student(nil, []string{"FinTech Startups"}, 1, 0)

			Convey("Then a requirement domain contained in an interest scores", func() {
				req := &model.HiringRequirement{Domain: "fintech"}
				So(m.HiringScore(req, candidate), ShouldEqual, 35)
			})

			Convey("And an interest contained in the requirement domain scores too", func() {
				short := student(nil, []string{"fin"}, 1, 0)
				req := &model.HiringRequirement{Domain: "fintech"}
				So(m.HiringScore(req, short), ShouldEqual, 35)
			})
		})

		Convey("When the candidate is short on experience", func() {
			req := &model.HiringRequirement{ExperienceNeeded: 5}

			Convey("Then each missing level costs 3 points", func() {
				So(m.HiringScore(req, student(nil, nil, 3, 0)), ShouldEqual, 9)
			})

			Convey("And five or more levels short floors at zero", func() {
				So(m.HiringScore(req, student(nil, nil, 0, 0)), ShouldEqual, 3)
				deep := &model.HiringRequirement{ExperienceNeeded: 10}
				So(m.HiringScore(deep, student(nil, nil, 1, 0)), ShouldEqual, 0)
			})
		})

		Convey("When the experience threshold is absent", func() {
			req := &model.HiringRequirement{ExperienceNeeded: 0}

			Convey("Then it behaves as a level-1 threshold, always satisfied", func() {
				So(m.HiringScore(req, student(nil, nil, 0, 0)), ShouldEqual, 15)
			})
		})

		Convey("When skills differ only in case and spacing", func() {
			req := &model.HiringRequirement{RequiredSkills: []string{"react", "NODE.JS"}}
			candidate := student([]string{" React ", "node.js"}, nil, 1, 0)

			Convey("Then the normalized comparison counts both", func() {
				// skills 65 + experience 15
				So(m.HiringScore(req, candidate), ShouldEqual, 80)
			})
		})
	})
}

func TestMatcher_Weights(t *testing.T) {
	Convey("Given configured weight overrides", t, func() {
		m := matching.NewMatcher(
			matching.WithPeerWeights(matching.PeerWeights{Skills: 60}),
		)

		Convey("When the skill weight uses the historical 60 variant", func() {
			current := student([]string{"Go", "React"}, nil, 1, 1000)
			candidate := student([]string{"Go"}, nil, 1, 1000)

			Convey("Then the overlap fraction applies against the new weight", func() {
				// 30 + 0 + 15 + 15
				So(m.PeerScore(current, candidate), ShouldEqual, 60)
			})
		})

		Convey("When overrides are non-positive", func() {
			zeroed := matching.NewMatcher(
				matching.WithPeerWeights(matching.PeerWeights{Skills: -1}),
				matching.WithHiringWeights(matching.HiringWeights{Domain: 0}),
			)

			Convey("Then the canonical defaults survive", func() {
				p := student([]string{"Go"}, []string{"AI"}, 1, 1000)
				So(zeroed.PeerScore(p, p), ShouldEqual, 100)
			})
		})
	})
}
