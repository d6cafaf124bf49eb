package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/matchalign/file"
	"github.com/jsphweid/matchalign/midi"
	"github.com/jsphweid/matchalign/util"
	"github.com/spf13/cobra"
)

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "",
		"MIDI file to write (default: a new file in $EXPORT_PATH)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export FILE",
	Short: "Exports the performance as a MIDI file",
	Long:  `Writes the performed notes and pedal changes of a match file as a Standard MIDI File.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := exportOut
		if out == "" {
			dir, err := util.EnsureExportDir()
			if err != nil {
				return err
			}
			out = filepath.Join(dir, uuid.New().String()+".mid")
		}
		return export(args[0], out)
	},
}

func export(in, out string) error {
	doc, err := file.Load(in)
	if err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	stats, err := midi.WritePerformance(f, doc)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", in, err)
	}

	written, err := midi.ReadMidiFile(out)
	if err != nil {
		return fmt.Errorf("verify %s: %w", out, err)
	}
	fmt.Printf("%v -> %v: %v notes, %v pedal changes, %v skipped, %v tracks\n",
		in, out, stats.Notes, stats.Pedals, stats.Skipped, len(written.Tracks))
	return nil
}
