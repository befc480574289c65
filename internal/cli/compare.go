package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/gitscout/gitscout/internal/domain/model"
)

// Breakdown rows render in the same order the scorer evaluates categories.
var breakdownOrder = []string{
	model.CategoryCommitFrequency,
	model.CategoryRepositoryCount,
	model.CategoryStarsReceived,
	model.CategoryLanguageMatch,
	model.CategoryCodeQualityEstimate,
}

var compareCmd = &cobra.Command{
	Use:   "compare <username>",
	Short: "Score a GitHub account against a standard profile",
	Example: `  gitscoutctl compare octocat --profile 2f1d... --owner alice
  GITSCOUT_GITHUB_TOKEN=ghp_... gitscoutctl compare torvalds -p 2f1d...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profileID, _ := cmd.Flags().GetString("profile")
		ownerID, _ := cmd.Flags().GetString("owner")

		svc, err := startService(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Stop()

		record, err := svc.CreateComparison(cmd.Context(), args[0], profileID, ownerID)
		if err != nil {
			return err
		}
		return renderComparison(cmd.OutOrStdout(), record)
	},
}

func renderComparison(w io.Writer, record model.ComparisonRecord) error {
	fmt.Fprintf(w, "Candidate:       %s\n", record.CandidateUsername)
	fmt.Fprintf(w, "Profile:         %s\n", record.ProfileName)
	fmt.Fprintf(w, "Overall score:   %.1f / 100\n", record.Result.OverallScore)
	fmt.Fprintf(w, "Recommendation:  %s\n\n", colorRecommendation(record.Result.Recommendation))

	table := tablewriter.NewWriter(w)
	defer table.Close()
	table.Header([]string{"Category", "Score", "Weight", "Detail"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var rows [][]string
	for _, category := range breakdownOrder {
		cs, ok := record.Result.Breakdown[category]
		if !ok {
			continue
		}
		rows = append(rows, []string{
			category,
			strconv.FormatFloat(cs.Score, 'f', 1, 64),
			strconv.FormatFloat(cs.Weight, 'f', 2, 64),
			cs.Description,
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	if len(record.Result.Strengths) > 0 {
		fmt.Fprintf(w, "\nStrengths:\n")
		for _, s := range record.Result.Strengths {
			fmt.Fprintf(w, "  + %s\n", green(s))
		}
	}
	if len(record.Result.Weaknesses) > 0 {
		fmt.Fprintf(w, "\nWeaknesses:\n")
		for _, s := range record.Result.Weaknesses {
			fmt.Fprintf(w, "  - %s\n", red(s))
		}
	}
	return nil
}

func colorRecommendation(rec string) string {
	switch rec {
	case model.RecommendationHire:
		return color.New(color.FgGreen, color.Bold).Sprint(rec)
	case model.RecommendationConsider:
		return color.New(color.FgYellow, color.Bold).Sprint(rec)
	default:
		return color.New(color.FgRed, color.Bold).Sprint(rec)
	}
}
