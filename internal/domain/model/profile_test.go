package model_test

import (
	"errors"
	"testing"

	"github.com/gitscout/gitscout/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func validProfile() model.StandardProfile {
	return model.StandardProfile{
		Name:        "Backend baseline",
		Description: "For backend candidates",
		Metrics: model.RequirementSet{
			CommitFrequency: &model.RangeRequirement{Min: 1, Optimal: 4},
			Languages: []model.LanguageRequirement{
				{Language: "Go", Proficiency: 40},
			},
		},
		Weights: map[string]float64{model.CategoryLanguageMatch: 2},
	}
}

func TestStandardProfile_Validate(t *testing.T) {
	Convey("Given a well-formed profile", t, func() {
		profile := validProfile()

		Convey("Then validation passes", func() {
			So(profile.Validate(), ShouldBeNil)
		})

		Convey("When the name is blank", func() {
			profile.Name = "  "
			err := profile.Validate()

			Convey("Then validation fails with ErrValidation", func() {
				So(errors.Is(err, model.ErrValidation), ShouldBeTrue)
			})
		})

		Convey("When the description is empty", func() {
			profile.Description = ""
			So(errors.Is(profile.Validate(), model.ErrValidation), ShouldBeTrue)
		})

		Convey("When commit frequency optimal does not exceed min", func() {
			profile.Metrics.CommitFrequency = &model.RangeRequirement{Min: 5, Optimal: 5}
			So(errors.Is(profile.Validate(), model.ErrValidation), ShouldBeTrue)
		})

		Convey("When a language requirement has an empty name", func() {
			profile.Metrics.Languages = []model.LanguageRequirement{{Language: " ", Proficiency: 50}}
			So(errors.Is(profile.Validate(), model.ErrValidation), ShouldBeTrue)
		})

		Convey("When a proficiency is outside [0,100]", func() {
			profile.Metrics.Languages = []model.LanguageRequirement{{Language: "Go", Proficiency: 120}}
			So(errors.Is(profile.Validate(), model.ErrValidation), ShouldBeTrue)
		})

		Convey("When the language block is present but empty", func() {
			profile.Metrics.Languages = []model.LanguageRequirement{}
			So(errors.Is(profile.Validate(), model.ErrValidation), ShouldBeTrue)
		})

		Convey("When a weight is negative", func() {
			profile.Weights = map[string]float64{model.CategoryStarsReceived: -1}
			So(errors.Is(profile.Validate(), model.ErrValidation), ShouldBeTrue)
		})

		Convey("When no requirement blocks are set", func() {
			profile.Metrics = model.RequirementSet{}

			Convey("Then the profile is still valid; it scores to zero", func() {
				So(profile.Validate(), ShouldBeNil)
			})
		})
	})
}

func TestStandardProfile_Weight(t *testing.T) {
	Convey("Given a profile with partial weights", t, func() {
		profile := model.StandardProfile{
			Weights: map[string]float64{
				model.CategoryCommitFrequency: 0,
				model.CategoryLanguageMatch:   2.5,
			},
		}

		Convey("Then configured keys return their value, even zero", func() {
			So(profile.Weight(model.CategoryCommitFrequency), ShouldEqual, 0)
			So(profile.Weight(model.CategoryLanguageMatch), ShouldEqual, 2.5)
		})

		Convey("And unspecified keys default to 1.0", func() {
			So(profile.Weight(model.CategoryStarsReceived), ShouldEqual, 1.0)
		})
	})
}
