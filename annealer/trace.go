package annealer

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
)

// TurnRecord is the observable state after one turn of the search.
type TurnRecord struct {
	Evals            int
	Stall            int // Turns since the best partition last improved
	Accepted         bool
	Temperature      float64
	CurrentFitness   float64
	CandidateFitness float64
	BestFitness      float64
	CurrentLen       int
	CandidateLen     int
	BestLen          int
}

// Trace is the ordered list of turn records from a Debug run, indexed by Evals.
type Trace []TurnRecord

var traceHeader = []string{
	"evals", "t_since_last_move", "move_accepted", "temp",
	"current_fit", "new_fit", "best_fit",
	"current_len", "new_len", "best_len",
}

func (tr Trace) Header() []string { return slices.Clone(traceHeader) }

func (rec TurnRecord) Row() []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	return []string{
		strconv.Itoa(rec.Evals),
		strconv.Itoa(rec.Stall),
		strconv.FormatBool(rec.Accepted),
		f(rec.Temperature),
		f(rec.CurrentFitness),
		f(rec.CandidateFitness),
		f(rec.BestFitness),
		strconv.Itoa(rec.CurrentLen),
		strconv.Itoa(rec.CandidateLen),
		strconv.Itoa(rec.BestLen),
	}
}

// WriteCSV writes the header and one row per record.
func (tr Trace) WriteCSV(w io.Writer) (err error) {
	cw := csv.NewWriter(w)
	if err = cw.Write(traceHeader); err != nil {
		return
	}
	for _, rec := range tr {
		if err = cw.Write(rec.Row()); err != nil {
			return
		}
	}
	cw.Flush()
	return cw.Error()
}

// ByEval finds the record for evaluation count evals. Turns without a candidate leave gaps.
func (tr Trace) ByEval(evals int) (rec TurnRecord, ok bool) {
	i, found := slices.BinarySearchFunc(tr, evals, func(r TurnRecord, e int) int {
		return cmp.Compare(r.Evals, e)
	})
	if !found {
		return
	}
	return tr[i], true
}

// ReadCSV parses a trace written by WriteCSV.
func ReadCSV(r io.Reader) (tr Trace, err error) {
	var records [][]string
	if records, err = csv.NewReader(r).ReadAll(); err != nil {
		return
	}
	if len(records) == 0 || !slices.Equal(records[0], traceHeader) {
		return nil, fmt.Errorf("annealer: trace header must be %v", traceHeader)
	}
	tr = make(Trace, 0, len(records)-1)
	for i, row := range records[1:] {
		var rec TurnRecord
		if rec, err = parseRow(row); err != nil {
			return nil, fmt.Errorf("annealer: trace row %d: %w", i+1, err)
		}
		tr = append(tr, rec)
	}
	return
}

func parseRow(row []string) (rec TurnRecord, err error) {
	ints := []*int{&rec.Evals, &rec.Stall}
	for i, dst := range ints {
		if *dst, err = strconv.Atoi(row[i]); err != nil {
			return
		}
	}
	if rec.Accepted, err = strconv.ParseBool(row[2]); err != nil {
		return
	}
	floats := []*float64{&rec.Temperature, &rec.CurrentFitness, &rec.CandidateFitness, &rec.BestFitness}
	for i, dst := range floats {
		if *dst, err = strconv.ParseFloat(row[3+i], 64); err != nil {
			return
		}
	}
	lens := []*int{&rec.CurrentLen, &rec.CandidateLen, &rec.BestLen}
	for i, dst := range lens {
		if *dst, err = strconv.Atoi(row[7+i]); err != nil {
			return
		}
	}
	return
}
