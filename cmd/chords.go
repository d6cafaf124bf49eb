package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/matchalign/chord"
	"github.com/jsphweid/matchalign/file"
	"github.com/jsphweid/matchalign/model"
	"github.com/spf13/cobra"
)

var (
	chordStep      float64
	chordPerformed bool
)

func init() {
	chordsCmd.Flags().Float64VarP(&chordStep, "step", "s", 1,
		"Beat grid step for score chords")
	chordsCmd.Flags().BoolVarP(&chordPerformed, "performed", "p", false,
		"List chords of the performance instead of the score")
	rootCmd.AddCommand(chordsCmd)
}

var chordsCmd = &cobra.Command{
	Use:   "chords FILE",
	Short: "Lists sounding chords",
	Long:  `Lists the pitches sounding on a beat grid of the score, or at each change of the performance.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := file.Load(args[0])
		if err != nil {
			return err
		}
		var chords []model.Chord
		if chordPerformed {
			chords = chord.Performed(doc)
		} else {
			chords = chord.AtScoreTimes(doc, chord.BeatGrid(doc, chordStep))
		}
		printChords(cmd.OutOrStdout(), chords)
		return nil
	},
}

func printChords(w io.Writer, chords []model.Chord) {
	for _, c := range chords {
		fmt.Fprintf(w, "%v\t%v\n", c.Time, c.Key)
	}
}
