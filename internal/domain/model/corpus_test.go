package model_test

import (
	"testing"
	"time"

	"github.com/42Prague/skillgenome/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func at(year int, month time.Month) time.Time {
	return time.Date(year, month, 15, 0, 0, 0, 0, time.UTC)
}

func TestNormalize(t *testing.T) {
	Convey("Given raw skill names", t, func() {
		Convey("Then normalization is case and whitespace insensitive", func() {
			So(model.Normalize("  Machine   Learning "), ShouldEqual, "machine learning")
			So(model.Normalize("GO"), ShouldEqual, "go")
			So(model.Normalize(""), ShouldEqual, "")
		})
	})
}

func TestBuildCorpus(t *testing.T) {
	Convey("Given events for two employees sharing a skill", t, func() {
		events := []model.SkillEvent{
			{EventID: "e1", PersonID: "p1", SkillName: "Go", Category: "engineering", Date: at(2023, time.March), Type: model.EventAcquired},
			{EventID: "e2", PersonID: "p1", SkillName: "go", Category: "engineering", Date: at(2024, time.March), Type: model.EventUsed},
			{EventID: "e3", PersonID: "p2", SkillName: "go", Category: "engineering", Date: at(2024, time.May), Type: model.EventAcquired},
			{EventID: "e4", PersonID: "p1", SkillName: "SQL", Category: "data", Date: at(2024, time.April), Type: model.EventAcquired},
		}

		Convey("When building the corpus", func() {
			c := model.BuildCorpus(events)

			Convey("Then skill names are canonicalized and counted per year", func() {
				So(c.SkillNames(), ShouldResemble, []string{"go", "sql"})
				So(c.Skills["go"].YearlyCounts[2023], ShouldEqual, 1)
				So(c.Skills["go"].YearlyCounts[2024], ShouldEqual, 2)
			})

			Convey("And holders and co-occurrence reflect final skill sets", func() {
				So(c.Skills["go"].Holders, ShouldEqual, 2)
				So(c.Skills["sql"].Holders, ShouldEqual, 1)
				So(c.CoOccurrence[[2]string{"go", "sql"}], ShouldEqual, 1)
			})

			Convey("And observed years are sorted", func() {
				So(c.Years, ShouldResemble, []int{2023, 2024})
			})
		})
	})

	Convey("Given an expiry after acquisition", t, func() {
		events := []model.SkillEvent{
			{EventID: "e1", PersonID: "p1", SkillName: "flash", Date: at(2020, time.May), Type: model.EventAcquired},
			{EventID: "e2", PersonID: "p1", SkillName: "flash", Date: at(2022, time.May), Type: model.EventExpired},
		}

		Convey("When building the corpus", func() {
			c := model.BuildCorpus(events)

			Convey("Then the skill keeps its history but loses its holder", func() {
				So(c.Skills["flash"].YearlyCounts[2020], ShouldEqual, 1)
				So(c.Skills["flash"].Holders, ShouldEqual, 0)
				So(c.Employees["p1"].HasSkill("flash"), ShouldBeFalse)
			})
		})
	})

	Convey("Given no events", t, func() {
		c := model.BuildCorpus(nil)

		Convey("Then the corpus is empty but usable", func() {
			So(c.Skills, ShouldBeEmpty)
			So(c.Employees, ShouldBeEmpty)
			So(c.SkillNames(), ShouldBeEmpty)
		})
	})
}
