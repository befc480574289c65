package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gitscout/gitscout/internal/adapters/repository"
	"github.com/gitscout/gitscout/internal/domain/model"
)

func openStore(t *testing.T, opts ...repository.Option) *repository.SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gitscout.db")
	store, err := repository.NewSQLiteStore(path, opts...)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleProfile(name string) model.StandardProfile {
	return model.StandardProfile{
		OwnerID:     "owner-1",
		Name:        name,
		Description: "baseline backend role",
		Metrics: model.RequirementSet{
			CommitFrequency: &model.RangeRequirement{Min: 1, Optimal: 3},
			Languages: []model.LanguageRequirement{
				{Language: "Go", Proficiency: 80},
			},
		},
		Weights: map[string]float64{
			model.CategoryCommitFrequency: 2,
		},
	}
}

func TestProfileCRUD(t *testing.T) {
	Convey("Given an open store", t, func() {
		store := openStore(t)
		ctx := context.Background()

		Convey("When a profile is created", func() {
			created, err := store.CreateProfile(ctx, sampleProfile("Backend"))
			So(err, ShouldBeNil)

			Convey("Then it receives an id and timestamp", func() {
				So(created.ID, ShouldNotBeEmpty)
				So(created.CreatedAt.IsZero(), ShouldBeFalse)
			})

			Convey("Then it round-trips with full fidelity", func() {
				got, err := store.GetProfile(ctx, created.ID)
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "Backend")
				So(got.Metrics.CommitFrequency, ShouldNotBeNil)
				So(got.Metrics.CommitFrequency.Optimal, ShouldEqual, 3)
				So(got.Metrics.Languages, ShouldHaveLength, 1)
				So(got.Weights[model.CategoryCommitFrequency], ShouldEqual, 2)
			})
		})

		Convey("When fetching an unknown profile", func() {
			_, err := store.GetProfile(ctx, "nope")

			Convey("Then ErrNotFound is returned", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a profile is updated", func() {
			created, err := store.CreateProfile(ctx, sampleProfile("Backend"))
			So(err, ShouldBeNil)

			changed := created
			changed.Name = "Senior Backend"
			changed.OwnerID = "intruder"
			updated, err := store.UpdateProfile(ctx, changed)
			So(err, ShouldBeNil)

			Convey("Then the name changes but identity fields do not", func() {
				So(updated.Name, ShouldEqual, "Senior Backend")
				So(updated.OwnerID, ShouldEqual, "owner-1")
				So(updated.CreatedAt.Equal(created.CreatedAt), ShouldBeTrue)
			})
		})

		Convey("When updating an unknown profile", func() {
			missing := sampleProfile("Ghost")
			missing.ID = "nope"
			_, err := store.UpdateProfile(ctx, missing)

			Convey("Then ErrNotFound is returned", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a profile is deleted", func() {
			created, err := store.CreateProfile(ctx, sampleProfile("Backend"))
			So(err, ShouldBeNil)
			So(store.DeleteProfile(ctx, created.ID), ShouldBeNil)

			Convey("Then it is gone", func() {
				_, err := store.GetProfile(ctx, created.ID)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})

			Convey("Then deleting it again reports not found", func() {
				So(errors.Is(store.DeleteProfile(ctx, created.ID), repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestProfileListing(t *testing.T) {
	Convey("Given profiles created at increasing times", t, func() {
		clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		store := openStore(t, repository.WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}))
		ctx := context.Background()

		for _, name := range []string{"First", "Second", "Third"} {
			_, err := store.CreateProfile(ctx, sampleProfile(name))
			So(err, ShouldBeNil)
		}
		other := sampleProfile("Other")
		other.OwnerID = "owner-2"
		_, err := store.CreateProfile(ctx, other)
		So(err, ShouldBeNil)

		Convey("When listing for the first owner", func() {
			profiles, err := store.ListProfiles(ctx, "owner-1")
			So(err, ShouldBeNil)

			Convey("Then only that owner's profiles appear, newest first", func() {
				So(profiles, ShouldHaveLength, 3)
				So(profiles[0].Name, ShouldEqual, "Third")
				So(profiles[1].Name, ShouldEqual, "Second")
				So(profiles[2].Name, ShouldEqual, "First")
			})
		})

		Convey("When listing for an owner with no profiles", func() {
			profiles, err := store.ListProfiles(ctx, "nobody")
			So(err, ShouldBeNil)
			So(profiles, ShouldBeEmpty)
		})
	})
}

func TestComparisonStore(t *testing.T) {
	Convey("Given an open store", t, func() {
		clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		store := openStore(t, repository.WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}))
		ctx := context.Background()

		record := model.ComparisonRecord{
			CandidateUsername: "octocat",
			ProfileID:         "profile-1",
			ProfileName:       "Backend",
			OwnerID:           "owner-1",
			Result: model.ComparisonResult{
				OverallScore:   90,
				Recommendation: model.RecommendationHire,
				Breakdown: map[string]model.CategoryScore{
					model.CategoryStarsReceived: {Score: 100, Weight: 1, Description: "120 stars received (min: 50)"},
				},
				Strengths: []string{"Projects have good community recognition"},
			},
		}

		Convey("When a comparison is created", func() {
			created, err := store.CreateComparison(ctx, record)
			So(err, ShouldBeNil)
			So(created.ID, ShouldNotBeEmpty)

			Convey("Then its result round-trips", func() {
				got, err := store.GetComparison(ctx, created.ID)
				So(err, ShouldBeNil)
				So(got.Result.OverallScore, ShouldEqual, 90)
				So(got.Result.Recommendation, ShouldEqual, model.RecommendationHire)
				So(got.Result.Breakdown[model.CategoryStarsReceived].Score, ShouldEqual, 100)
				So(got.ProfileName, ShouldEqual, "Backend")
			})

			Convey("Then deleting the referenced profile leaves it readable", func() {
				profile, err := store.CreateProfile(ctx, sampleProfile("Backend"))
				So(err, ShouldBeNil)
				So(store.DeleteProfile(ctx, profile.ID), ShouldBeNil)

				got, err := store.GetComparison(ctx, created.ID)
				So(err, ShouldBeNil)
				So(got.ProfileName, ShouldEqual, "Backend")
			})

			Convey("Then it can be deleted", func() {
				So(store.DeleteComparison(ctx, created.ID), ShouldBeNil)
				_, err := store.GetComparison(ctx, created.ID)
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When several comparisons exist", func() {
			for _, user := range []string{"alice", "bob", "carol"} {
				rec := record
				rec.CandidateUsername = user
				_, err := store.CreateComparison(ctx, rec)
				So(err, ShouldBeNil)
			}

			Convey("Then listing returns them newest first", func() {
				records, err := store.ListComparisons(ctx, "owner-1")
				So(err, ShouldBeNil)
				So(records, ShouldHaveLength, 3)
				So(records[0].CandidateUsername, ShouldEqual, "carol")
				So(records[2].CandidateUsername, ShouldEqual, "alice")
			})
		})

		Convey("When fetching an unknown comparison", func() {
			_, err := store.GetComparison(ctx, "nope")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When deleting an unknown comparison", func() {
			So(errors.Is(store.DeleteComparison(ctx, "nope"), repository.ErrNotFound), ShouldBeTrue)
		})
	})
}
