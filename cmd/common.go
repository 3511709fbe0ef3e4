package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/boxcut/InputParameters"
	"github.com/notargets/boxcut/annealer"
	"github.com/notargets/boxcut/readfiles"
)

type Search struct {
	MatrixFile string
	ParamFile  string
	Coordinate bool
	Symmetric  bool
	Seed       uint64
	Verbose    bool
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("matrixFile", "M", "", "matrix file, dense rows of values or coordinate triplets with --coordinate")
	cmd.Flags().StringP("inputParametersFile", "I", "", "YAML file for search parameters like:\n\t- InitialTemperature\n\t- CoolingFactor\n\t- PeriodFloor")
	cmd.Flags().Bool("coordinate", false, "matrix file is in coordinate (i j value) format")
	cmd.Flags().Bool("symmetric", false, "mirror coordinate entries across the diagonal")
	cmd.Flags().Uint64("seed", 0, "random seed, overrides the parameter file (0 = random)")
}

func readSearchFlags(cmd *cobra.Command) (s *Search, err error) {
	s = &Search{}
	if s.MatrixFile, err = cmd.Flags().GetString("matrixFile"); err != nil {
		return
	}
	if s.ParamFile, err = cmd.Flags().GetString("inputParametersFile"); err != nil {
		return
	}
	s.Coordinate, _ = cmd.Flags().GetBool("coordinate")
	s.Symmetric, _ = cmd.Flags().GetBool("symmetric")
	s.Seed, _ = cmd.Flags().GetUint64("seed")
	s.Verbose = viper.GetBool("verbose")
	if len(s.MatrixFile) == 0 {
		err = fmt.Errorf("must supply a matrix file (-M, --matrixFile)")
	}
	return
}

func (s *Search) Matrix() (M *mat.Dense, err error) {
	if s.Coordinate {
		return readfiles.ReadCoordinate(s.MatrixFile, s.Symmetric, s.Verbose)
	}
	return readfiles.ReadMatrix(s.MatrixFile, s.Verbose)
}

func (s *Search) Parameters() (sp *InputParameters.SearchParameters, err error) {
	sp = &InputParameters.SearchParameters{}
	if len(s.ParamFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(s.ParamFile); err != nil {
			return
		}
		if err = sp.Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", s.ParamFile, err)
		}
	}
	if s.Seed != 0 {
		sp.Seed = s.Seed
	}
	return
}

func (s *Search) Config() (cfg annealer.Config, sp *InputParameters.SearchParameters, err error) {
	if sp, err = s.Parameters(); err != nil {
		return
	}
	cfg = sp.Config()
	cfg.Logger = logger
	return
}

func (s *Search) Annealer() (a *annealer.Annealer, sp *InputParameters.SearchParameters, err error) {
	var cfg annealer.Config
	if cfg, sp, err = s.Config(); err != nil {
		return
	}
	a, err = annealer.New(cfg)
	return
}
