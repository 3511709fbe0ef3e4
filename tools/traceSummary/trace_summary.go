package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/notargets/boxcut/annealer"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "trace file written by boxcut debug")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	levels, err := readTrace(csvFile)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	printLevels(os.Stdout, levels)
}

// CoolingLevel aggregates the turns run at one temperature.
type CoolingLevel struct {
	Temperature     float64
	FirstEval       int
	LastEval        int
	Turns, Accepted int
	Improved        int // Turns that set a new best
	BestFitness     float64
	BestLen         int
}

func (cl *CoolingLevel) Add(rec annealer.TurnRecord) {
	cl.LastEval = rec.Evals
	cl.Turns++
	if rec.Accepted {
		cl.Accepted++
	}
	if rec.Stall == 0 {
		cl.Improved++
	}
	cl.BestFitness = rec.BestFitness
	cl.BestLen = rec.BestLen
}

func (cl *CoolingLevel) AcceptanceRate() float64 {
	if cl.Turns == 0 {
		return 0
	}
	return float64(cl.Accepted) / float64(cl.Turns)
}

func readTrace(csvFile string) (levels []*CoolingLevel, err error) {
	var (
		f  *os.File
		tr annealer.Trace
	)
	if f, err = os.Open(csvFile); err != nil {
		return
	}
	defer f.Close()
	if tr, err = annealer.ReadCSV(bufio.NewReader(f)); err != nil {
		return
	}
	return summarize(tr), nil
}

func summarize(tr annealer.Trace) (levels []*CoolingLevel) {
	var cl *CoolingLevel
	for _, rec := range tr {
		if cl == nil || rec.Temperature != cl.Temperature {
			cl = &CoolingLevel{Temperature: rec.Temperature, FirstEval: rec.Evals}
			levels = append(levels, cl)
		}
		cl.Add(rec)
	}
	return
}

func printLevels(w io.Writer, levels []*CoolingLevel) {
	fmt.Fprintf(w, "%12s %8s %8s %8s %8s %8s %14s %6s\n",
		"temp", "first", "last", "turns", "accept", "improve", "best_fit", "boxes")
	for _, cl := range levels {
		fmt.Fprintf(w, "%12.6g %8d %8d %8d %8.3f %8d %14.6g %6d\n",
			cl.Temperature, cl.FirstEval, cl.LastEval, cl.Turns, cl.AcceptanceRate(),
			cl.Improved, cl.BestFitness, cl.BestLen)
	}
}
