package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/matchalign/file"
	"github.com/jsphweid/matchalign/matchfile"
	"github.com/jsphweid/matchalign/model"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Summarizes a match file",
	Long:  `Prints record counts, info lines, time signatures and quarantined lines of a match file.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := file.Load(args[0])
		if err != nil {
			return err
		}
		inspect(cmd.OutOrStdout(), doc)
		return nil
	},
}

func inspect(w io.Writer, doc *matchfile.Document) {
	fmt.Fprintf(w, "file: %v\n", doc.Name())
	fmt.Fprintf(w, "lines: %v\n", doc.Len())

	counts := doc.Counts()
	for _, k := range model.Kinds() {
		if n := counts[k]; n > 0 {
			fmt.Fprintf(w, "  %v: %v\n", k, n)
		}
	}

	for _, e := range doc.InfoEntries() {
		fmt.Fprintf(w, "info %v: %v\n", e.Attribute, e.Value)
	}
	for _, ts := range doc.TimeSignatures() {
		fmt.Fprintf(w, "time signature %v/%v at beat %v\n", ts.Meter.Numerator, ts.Meter.Denominator, ts.Onset)
	}
	fmt.Fprintf(w, "highest voice: %v notes\n", len(doc.HighestVoice(true)))

	for _, d := range doc.Diagnostics() {
		fmt.Fprintf(w, "quarantined %v\n", d)
	}
}
