package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/notargets/boxcut/annealer"
)

// FitCmd represents the fit command
var FitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Find the best block diagonal partition of a matrix",
	Long: `
Runs the annealing search to convergence and prints the best partition found. With
--restarts, independent searches are run in parallel and the best of them is kept,

boxcut fit -M matrix.txt -I params.yaml --restarts 8`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			s        *Search
			counts   bool
			restarts int
			parallel int
		)
		if s, err = readSearchFlags(cmd); err != nil {
			return
		}
		counts, _ = cmd.Flags().GetBool("perf")
		restarts, _ = cmd.Flags().GetInt("restarts")
		parallel, _ = cmd.Flags().GetInt("parallel")
		M, err := s.Matrix()
		if err != nil {
			return
		}
		cfg, sp, err := s.Config()
		if err != nil {
			return
		}
		if s.Verbose {
			sp.Print()
		}
		var (
			results []annealer.Restart
			best    int
			start   = time.Now()
		)
		search := func() (err error) {
			if restarts <= 1 {
				var (
					a   *annealer.Annealer
					res annealer.Restart
				)
				if a, err = annealer.New(cfg); err != nil {
					return
				}
				if res.Best, res.Fitness, err = a.Fit(M, nil); err != nil {
					return
				}
				res.Seed, res.Stats = cfg.Seed, a.Stats()
				results = []annealer.Restart{res}
				return
			}
			results, best, err = annealer.Multistart(M, cfg, restarts, parallel)
			return
		}
		if counts {
			err = countInstructions(search)
		} else {
			err = search()
		}
		if err != nil {
			return
		}
		if len(results) > 1 {
			for r, res := range results {
				fmt.Printf("Restart %3d: fitness = %g, %d boxes after %d evaluations\n",
					r, res.Fitness, res.Best.Len(), res.Stats.Evals)
			}
		}
		res := results[best]
		fmt.Printf("Best fitness = %g, %d boxes after %d evaluations (%v)\n",
			res.Fitness, res.Best.Len(), res.Stats.Evals, time.Since(start).Round(time.Millisecond))
		fmt.Printf("Edges: %v\n", res.Best.Edges())
		for begin, end := range res.Best.Items() {
			fmt.Printf("[%d, %d)\n", begin, end)
		}
		return
	},
}

func init() {
	rootCmd.AddCommand(FitCmd)
	addSearchFlags(FitCmd)
	FitCmd.Flags().Bool("perf", false, "count CPU instructions used by the search (linux perf events)")
	FitCmd.Flags().Int("restarts", 1, "number of independent searches, the best is reported")
	FitCmd.Flags().Int("parallel", 0, "goroutines used for restarts (0 = number of CPUs)")
}
