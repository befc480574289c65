package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/gitscout/gitscout/internal/domain/model"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage standard profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the standard profiles of an owner",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ownerID, _ := cmd.Flags().GetString("owner")

		svc, err := startService(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Stop()

		profiles, err := svc.ListProfiles(cmd.Context(), ownerID)
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			cmd.Printf("no profiles for owner %q\n", ownerID)
			return nil
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		defer table.Close()
		table.Header([]string{"ID", "Name", "Weighted Categories", "Created"})
		var rows [][]string
		for _, p := range profiles {
			rows = append(rows, []string{
				p.ID,
				p.Name,
				strconv.Itoa(len(p.Weights)),
				p.CreatedAt.Format("2006-01-02 15:04"),
			})
		}
		if err := table.Bulk(rows); err != nil {
			return err
		}
		return table.Render()
	},
}

var profilesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a standard profile from a JSON document",
	Example: `  gitscoutctl profiles create -f senior-backend.json --owner alice`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		ownerID, _ := cmd.Flags().GetString("owner")

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read profile document: %w", err)
		}
		var profile model.StandardProfile
		if err := json.Unmarshal(raw, &profile); err != nil {
			return fmt.Errorf("parse profile document: %w", err)
		}
		if profile.OwnerID == "" {
			profile.OwnerID = ownerID
		}

		svc, err := startService(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Stop()

		created, err := svc.CreateProfile(cmd.Context(), profile)
		if err != nil {
			return err
		}
		cmd.Printf("created profile %q with id %s\n", created.Name, created.ID)
		return nil
	},
}

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a standard profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := startService(cmd.Context())
		if err != nil {
			return err
		}
		defer svc.Stop()

		if err := svc.DeleteProfile(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("deleted profile %s\n", args[0])
		return nil
	},
}
