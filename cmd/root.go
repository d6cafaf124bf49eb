package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "matchalign",
	Short: "Reads score to performance alignment (match) files",
	Long: `Reads match files, which align the notes of a performance to the
notes of its score, and answers questions about them.`,
	SilenceUsage: true,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
