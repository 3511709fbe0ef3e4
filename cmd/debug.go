package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/boxcut/traceplot"
)

// DebugCmd represents the debug command
var DebugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Run a search and write the per-turn trace",
	Long: `
Runs the annealing search from the all-singleton partition and writes one CSV row per turn,
optionally plotting the fitness and box count histories,

boxcut debug -M matrix.txt -o trace.csv --plot trace.png`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			s        *Search
			out      string
			plotFile string
		)
		if s, err = readSearchFlags(cmd); err != nil {
			return
		}
		out, _ = cmd.Flags().GetString("output")
		plotFile, _ = cmd.Flags().GetString("plot")
		M, err := s.Matrix()
		if err != nil {
			return
		}
		a, sp, err := s.Annealer()
		if err != nil {
			return
		}
		tr, err := a.Debug(M)
		if err != nil {
			return
		}
		w := os.Stdout
		if len(out) != 0 {
			var file *os.File
			if file, err = os.Create(out); err != nil {
				return
			}
			defer file.Close()
			w = file
		}
		if err = tr.WriteCSV(w); err != nil {
			return
		}
		st := a.Stats()
		logger.Info("trace written", "rows", len(tr), "evals", st.Evals, "best_fit", st.BestFitness)
		if len(plotFile) != 0 {
			title := sp.Title
			if len(title) == 0 {
				title = s.MatrixFile
			}
			var files []string
			if files, err = traceplot.SaveTrace(tr, title, plotFile); err != nil {
				return
			}
			fmt.Printf("Plots written: %v\n", files)
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(DebugCmd)
	addSearchFlags(DebugCmd)
	DebugCmd.Flags().StringP("output", "o", "", "CSV file for the trace (default stdout)")
	DebugCmd.Flags().StringP("plot", "p", "", "PNG file for the fitness history, box counts go to <name>_boxes.png")
}
