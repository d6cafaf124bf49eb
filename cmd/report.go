package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/jsphweid/matchalign/constants"
	"github.com/jsphweid/matchalign/file"
	"github.com/jsphweid/matchalign/matchfile"
	"github.com/jsphweid/matchalign/model"
	"github.com/jsphweid/matchalign/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [DIR] [MAX]",
	Short: "Creates a report",
	Long:  `Aggregates record counts over every match file below DIR (default $MATCH_PATH).`,
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := constants.GetMatchDir()
		if len(args) > 0 {
			dir = args[0]
		}
		var maxNum int
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			maxNum = n
		}
		paths, err := util.GatherAllMatchPaths(dir, maxNum)
		if err != nil {
			return err
		}
		docs, err := file.LoadMany(reportContext(cmd.Context()), paths...)
		if err != nil {
			return err
		}
		report(cmd.OutOrStdout(), analyzeFiles(docs))
		return nil
	},
}

type filesReport struct {
	numFiles       int
	numLines       []int
	kinds          map[model.Kind]int
	numPairs       []int
	numDiagnostics map[uint32]int
	fileNums       map[uint32]string
}

func analyzeFiles(docs []*matchfile.Document) filesReport {
	r := filesReport{
		numFiles:       len(docs),
		kinds:          make(map[model.Kind]int),
		numDiagnostics: make(map[uint32]int),
	}
	names := make([]string, len(docs))
	for i, doc := range docs {
		names[i] = doc.Name()
		r.numLines = append(r.numLines, doc.Len())
		r.numPairs = append(r.numPairs, len(doc.NotePairs()))
		for k, n := range doc.Counts() {
			r.kinds[k] += n
		}
		if n := len(doc.Diagnostics()); n > 0 {
			r.numDiagnostics[uint32(i)] = n
		}
	}
	r.fileNums = file.CreateFileNumMap(names)
	return r
}

func report(w io.Writer, r filesReport) {
	fmt.Fprintf(w, "numFiles: %v\n", r.numFiles)
	fmt.Fprintf(w, "numLines: %v\n", util.Sum(r.numLines))
	fmt.Fprintf(w, "numPairs: %v\n", util.Sum(r.numPairs))
	for _, k := range model.Kinds() {
		if n := r.kinds[k]; n > 0 {
			fmt.Fprintf(w, "  %v: %v\n", k, n)
		}
	}
	for _, num := range util.GetKeysSorted(r.numDiagnostics) {
		fmt.Fprintf(w, "quarantined lines in %v: %v\n", r.fileNums[num], r.numDiagnostics[num])
	}
}

// reportContext keeps report usable outside cobra, where cmd.Context() is nil.
func reportContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
