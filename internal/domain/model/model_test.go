package model_test

import (
	"errors"
	"testing"

	model "github.com/okian/gradebook/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestNewGrade(t *testing.T) {
	convey.Convey("Given grade fields", t, func() {
		convey.Convey("When all required fields are present", func() {
			g, err := model.NewGrade("alice", "csc207", 80)

			convey.Convey("Then the grade holds them unchanged", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(g.Username, convey.ShouldEqual, "alice")
				convey.So(g.Course, convey.ShouldEqual, "csc207")
				convey.So(g.Grade, convey.ShouldEqual, 80)
				convey.So(g.String(), convey.ShouldEqual, "alice/csc207: 80")
			})
		})

		convey.Convey("When the score is outside any usual range", func() {
			g, err := model.NewGrade("bob", "csc207", -5)

			convey.Convey("Then it is still accepted", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(g.Grade, convey.ShouldEqual, -5)
			})
		})

		convey.Convey("When the username is blank", func() {
			_, err := model.NewGrade("  ", "csc207", 80)

			convey.Convey("Then it is rejected", func() {
				convey.So(errors.Is(err, model.ErrInvalidGrade), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "username")
			})
		})

		convey.Convey("When the course is empty", func() {
			_, err := model.NewGrade("alice", "", 80)

			convey.Convey("Then it is rejected", func() {
				convey.So(errors.Is(err, model.ErrInvalidGrade), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "course")
			})
		})
	})
}

func TestNewTeam(t *testing.T) {
	convey.Convey("Given team fields", t, func() {
		members := []string{"alice", "bob"}

		convey.Convey("When building a team", func() {
			team, err := model.NewTeam("owls", members)

			convey.Convey("Then name, order and size are preserved", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(team.Name(), convey.ShouldEqual, "owls")
				convey.So(team.Members(), convey.ShouldResemble, []string{"alice", "bob"})
				convey.So(team.Size(), convey.ShouldEqual, 2)
				convey.So(team.String(), convey.ShouldEqual, "owls [alice, bob]")
			})

			convey.Convey("And mutating the input does not change the team", func() {
				members[0] = "mallory"
				convey.So(team.Members()[0], convey.ShouldEqual, "alice")
			})

			convey.Convey("And mutating the returned members does not change the team", func() {
				got := team.Members()
				got[1] = "mallory"
				convey.So(team.Members()[1], convey.ShouldEqual, "bob")
			})
		})

		convey.Convey("When the team has no members", func() {
			team, err := model.NewTeam("solo", nil)

			convey.Convey("Then it is valid and empty", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(team.Size(), convey.ShouldEqual, 0)
				convey.So(team.Members(), convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the name is missing", func() {
			_, err := model.NewTeam("", members)

			convey.Convey("Then it is rejected", func() {
				convey.So(errors.Is(err, model.ErrInvalidTeam), convey.ShouldBeTrue)
			})
		})
	})
}
