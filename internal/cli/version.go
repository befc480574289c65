package cli

import "github.com/spf13/cobra"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gitscoutctl version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("gitscoutctl %s\n", version)
	},
}
