package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/boxcut/model_problems/BlockDiagonal"
	"github.com/notargets/boxcut/readfiles"
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic block diagonal test matrix",
	Long: `
Writes a symmetric matrix with k equal diagonal blocks and Gaussian noise, in the dense format
read by fit and debug,

boxcut generate -n 60 -k 4 --noise 0.1 -o blocks.txt`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			n, k                   int
			within, between, noise float64
			seed                   uint64
			out                    string
		)
		n, _ = cmd.Flags().GetInt("n")
		k, _ = cmd.Flags().GetInt("k")
		within, _ = cmd.Flags().GetFloat64("within")
		between, _ = cmd.Flags().GetFloat64("between")
		noise, _ = cmd.Flags().GetFloat64("noise")
		seed, _ = cmd.Flags().GetUint64("seed")
		out, _ = cmd.Flags().GetString("output")
		sizes := BlockDiagonal.EvenSizes(n, k)
		if sizes == nil {
			return fmt.Errorf("can not split %d rows into %d blocks", n, k)
		}
		bd, err := BlockDiagonal.NewBlockDiagonal(sizes, within, between, noise, seed)
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
		if err = readfiles.WriteMatrix(w, bd.Matrix()); err != nil {
			return
		}
		logger.Info("matrix generated", "n", bd.N(), "edges", bd.Edges())
		return
	},
}

func init() {
	rootCmd.AddCommand(GenerateCmd)
	GenerateCmd.Flags().IntP("n", "n", 20, "matrix size")
	GenerateCmd.Flags().IntP("k", "k", 2, "number of diagonal blocks")
	GenerateCmd.Flags().Float64("within", 1, "value inside blocks")
	GenerateCmd.Flags().Float64("between", 0, "value outside blocks")
	GenerateCmd.Flags().Float64("noise", 0.05, "standard deviation of the added noise")
	GenerateCmd.Flags().Uint64("seed", 1, "random seed for the noise")
	GenerateCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
}
