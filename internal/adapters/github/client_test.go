package github_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/gitscout/gitscout/internal/adapters/github"
)

// fixtureServer serves a small two-page account: "alpha" and "beta" are owned
// repositories, "fork-lib" is a fork whose language data must never be
// requested.
func fixtureServer(t *testing.T, forkLanguageCalls *atomic.Int64) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	var srv *httptest.Server
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"login":"octocat","name":"The Octocat","avatar_url":"https://example.test/a.png","bio":"Mascot","public_repos":3,"followers":42}`)
	})

	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprintf(w, `[
				{"name":"beta","full_name":"octocat/beta","description":"","fork":false,"stargazers_count":0,"forks_count":0,"languages_url":"%s/repos/octocat/beta/languages"}
			]`, srv.URL)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/users/octocat/repos?page=2&per_page=100>; rel="next"`, srv.URL))
		fmt.Fprintf(w, `[
			{"name":"alpha","full_name":"octocat/alpha","description":"CLI tool","fork":false,"stargazers_count":8,"forks_count":2,"languages_url":"%s/repos/octocat/alpha/languages"},
			{"name":"fork-lib","full_name":"octocat/fork-lib","description":"forked","fork":true,"stargazers_count":5,"forks_count":1,"languages_url":"%s/repos/octocat/fork-lib/languages"}
		]`, srv.URL, srv.URL)
	})

	mux.HandleFunc("/repos/octocat/alpha/languages", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"Go":6000,"Makefile":2000}`)
	})
	mux.HandleFunc("/repos/octocat/beta/languages", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"Python":2000}`)
	})
	mux.HandleFunc("/repos/octocat/fork-lib/languages", func(w http.ResponseWriter, _ *http.Request) {
		if forkLanguageCalls != nil {
			forkLanguageCalls.Add(1)
		}
		fmt.Fprint(w, `{}`)
	})

	mux.HandleFunc("/repos/octocat/alpha/commits", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("author") != "octocat" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(commitList(20)))
	})
	mux.HandleFunc("/repos/octocat/beta/commits", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(commitList(5)))
	})

	return srv
}

func commitList(n int) string {
	out := "["
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"sha":"%040d"}`, i)
	}
	return out + "]"
}

func statusServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCandidate(t *testing.T) {
	Convey("Given a known account", t, func() {
		srv := fixtureServer(t, nil)
		client := github.New(github.WithBaseURL(srv.URL))

		Convey("When the candidate view is fetched", func() {
			candidate, err := client.Candidate(context.Background(), "octocat")
			So(err, ShouldBeNil)

			Convey("Then profile fields are mapped through", func() {
				So(candidate.Name, ShouldEqual, "The Octocat")
				So(candidate.Username, ShouldEqual, "octocat")
				So(candidate.Bio, ShouldEqual, "Mascot")
				So(candidate.PublicRepos, ShouldEqual, 3)
				So(candidate.Followers, ShouldEqual, 42)
			})
		})
	})

	Convey("Given an account without a display name", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"login":"ghost","name":""}`)
		}))
		defer srv.Close()
		client := github.New(github.WithBaseURL(srv.URL))

		Convey("Then the login stands in for the name", func() {
			candidate, err := client.Candidate(context.Background(), "ghost")
			So(err, ShouldBeNil)
			So(candidate.Name, ShouldEqual, "ghost")
		})
	})
}

func TestErrorMapping(t *testing.T) {
	Convey("Given upstream failure responses", t, func() {
		ctx := context.Background()

		Convey("When the user does not exist", func() {
			client := github.New(github.WithBaseURL(statusServer(t, http.StatusNotFound).URL))
			_, err := client.Metrics(ctx, "nobody")
			So(errors.Is(err, github.ErrUserNotFound), ShouldBeTrue)
		})

		Convey("When the quota is exhausted", func() {
			client := github.New(github.WithBaseURL(statusServer(t, http.StatusForbidden).URL))
			_, err := client.Metrics(ctx, "octocat")
			So(errors.Is(err, github.ErrRateLimited), ShouldBeTrue)
		})

		Convey("When requests are throttled", func() {
			client := github.New(github.WithBaseURL(statusServer(t, http.StatusTooManyRequests).URL))
			_, err := client.Candidate(ctx, "octocat")
			So(errors.Is(err, github.ErrRateLimited), ShouldBeTrue)
		})

		Convey("When the API misbehaves", func() {
			client := github.New(github.WithBaseURL(statusServer(t, http.StatusInternalServerError).URL))
			_, err := client.Candidate(ctx, "octocat")
			So(errors.Is(err, github.ErrUpstream), ShouldBeTrue)
		})
	})
}

func TestMetrics(t *testing.T) {
	Convey("Given a two-page account with one fork", t, func() {
		var forkLanguageCalls atomic.Int64
		srv := fixtureServer(t, &forkLanguageCalls)
		client := github.New(
			github.WithBaseURL(srv.URL),
			github.WithCommitWindow(10),
		)

		Convey("When metrics are fetched", func() {
			metrics, err := client.Metrics(context.Background(), "octocat")
			So(err, ShouldBeNil)

			Convey("Then repository totals span every page and include forks", func() {
				So(metrics.RepositoryCount, ShouldEqual, 3)
				So(metrics.StarsReceived, ShouldEqual, 13)
				So(metrics.ForkCount, ShouldEqual, 3)
			})

			Convey("Then language bytes come from owned repositories only", func() {
				So(metrics.LanguageBytes["Go"], ShouldEqual, 6000)
				So(metrics.LanguageBytes["Makefile"], ShouldEqual, 2000)
				So(metrics.LanguageBytes["Python"], ShouldEqual, 2000)
				So(forkLanguageCalls.Load(), ShouldEqual, 0)
			})

			Convey("Then commit frequency averages over the window", func() {
				// 25 authored commits across 10 days
				So(metrics.CommitFrequency, ShouldEqual, 2.5)
			})

			Convey("Then the quality estimate reflects descriptions and stars", func() {
				// 1 of 2 owned repos described: 30. Average 4 stars: 16.
				So(metrics.CodeQualityEstimate, ShouldEqual, 46.0)
			})

			Convey("Then the fetch is stamped", func() {
				So(metrics.FetchedAt.IsZero(), ShouldBeFalse)
				So(metrics.Username, ShouldEqual, "octocat")
			})
		})
	})
}

func TestMetricsDegradation(t *testing.T) {
	Convey("Given an account whose sub-fetches fail", t, func() {
		mux := http.NewServeMux()
		var srv *httptest.Server
		srv = httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/users/solo", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"login":"solo"}`)
		})
		mux.HandleFunc("/users/solo/repos", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintf(w, `[{"name":"only","full_name":"solo/only","description":"x","fork":false,"stargazers_count":1,"forks_count":0,"languages_url":"%s/repos/solo/only/languages"}]`, srv.URL)
		})
		mux.HandleFunc("/repos/solo/only/languages", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		mux.HandleFunc("/repos/solo/only/commits", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		client := github.New(github.WithBaseURL(srv.URL))

		Convey("When metrics are fetched", func() {
			metrics, err := client.Metrics(context.Background(), "solo")

			Convey("Then failed repositories contribute zero instead of failing the call", func() {
				So(err, ShouldBeNil)
				So(metrics.RepositoryCount, ShouldEqual, 1)
				So(metrics.CommitFrequency, ShouldEqual, 0)
				So(metrics.LanguageBytes, ShouldBeEmpty)
			})
		})
	})
}

func TestLanguages(t *testing.T) {
	Convey("Given a mixed-language account", t, func() {
		srv := fixtureServer(t, nil)
		client := github.New(github.WithBaseURL(srv.URL))

		Convey("When the breakdown is fetched", func() {
			shares, err := client.Languages(context.Background(), "octocat")
			So(err, ShouldBeNil)

			Convey("Then shares are percentages ordered largest first", func() {
				So(shares, ShouldHaveLength, 3)
				So(shares[0].Name, ShouldEqual, "Go")
				So(shares[0].Percent, ShouldEqual, 60.0)
				So(shares[1].Percent, ShouldEqual, 20.0)
				So(shares[2].Percent, ShouldEqual, 20.0)
			})
		})
	})

	Convey("Given a polyglot account with more than five languages", t, func() {
		mux := http.NewServeMux()
		var srv *httptest.Server
		srv = httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/users/poly", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"login":"poly"}`)
		})
		mux.HandleFunc("/users/poly/repos", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintf(w, `[{"name":"mono","full_name":"poly/mono","description":"x","fork":false,"stargazers_count":0,"forks_count":0,"languages_url":"%s/repos/poly/mono/languages"}]`, srv.URL)
		})
		mux.HandleFunc("/repos/poly/mono/languages", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, `{"Go":8000,"Python":7000,"Ruby":6000,"Rust":5000,"C":4000,"Lua":3000,"Zig":2000,"Perl":1000}`)
		})

		client := github.New(github.WithBaseURL(srv.URL))

		Convey("When the breakdown is fetched", func() {
			shares, err := client.Languages(context.Background(), "poly")
			So(err, ShouldBeNil)

			Convey("Then only the top five languages are returned", func() {
				So(shares, ShouldHaveLength, 5)
				So(shares[0].Name, ShouldEqual, "Go")
				So(shares[4].Name, ShouldEqual, "C")
			})
		})
	})
}
