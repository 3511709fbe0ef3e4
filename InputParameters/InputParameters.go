package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/boxcut/annealer"
)

// Parameters obtained from the YAML input file, unset values keep the search defaults
type SearchParameters struct {
	Title              string  `json:"Title"`
	InitialTemperature float64 `json:"InitialTemperature"`
	CoolingFactor      float64 `json:"CoolingFactor"`
	PeriodFloor        int     `json:"PeriodFloor"`
	ParetoShape        float64 `json:"ParetoShape"`
	Seed               uint64  `json:"Seed"`
}

func (sp *SearchParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, sp)
}

func (sp *SearchParameters) Config() (cfg annealer.Config) {
	cfg = annealer.DefaultConfig()
	if sp.InitialTemperature != 0 {
		cfg.InitialTemperature = sp.InitialTemperature
	}
	if sp.CoolingFactor != 0 {
		cfg.CoolingFactor = sp.CoolingFactor
	}
	if sp.PeriodFloor != 0 {
		cfg.PeriodFloor = sp.PeriodFloor
	}
	if sp.ParetoShape != 0 {
		cfg.ParetoShape = sp.ParetoShape
	}
	cfg.Seed = sp.Seed
	return
}

func (sp *SearchParameters) Print() {
	cfg := sp.Config()
	fmt.Printf("\"%s\"\t\t= Title\n", sp.Title)
	fmt.Printf("%8.5f\t\t= Initial Temperature\n", cfg.InitialTemperature)
	fmt.Printf("%8.5f\t\t= Cooling Factor\n", cfg.CoolingFactor)
	fmt.Printf("[%d]\t\t\t= Period Floor\n", cfg.PeriodFloor)
	fmt.Printf("%8.5f\t\t= Pareto Shape\n", cfg.ParetoShape)
	fmt.Printf("[%d]\t\t\t= Seed\n", cfg.Seed)
}
