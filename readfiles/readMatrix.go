package readfiles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

var ErrFormat = errors.New("readfiles: malformed matrix file")

// ReadMatrix reads a dense matrix file: one row per line, values separated by whitespace or
// commas. Blank lines and lines starting with '#' are skipped.
func ReadMatrix(filename string, verbose bool) (M *mat.Dense, err error) {
	var file *os.File
	if verbose {
		fmt.Printf("Reading dense matrix file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer file.Close()
	if M, err = readDense(bufio.NewReader(file)); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if verbose {
		nr, nc := M.Dims()
		fmt.Printf("Matrix dimensions: %d x %d\n", nr, nc)
	}
	return
}

// ReadCoordinate reads a coordinate (triplet) file. The first data line holds the
// dimensions, "n" or "nr nc"; every following line is a zero based "i j value" entry.
// Missing entries are zero. With symmetric set, each off-diagonal entry is mirrored, so
// only one triangle should be listed.
func ReadCoordinate(filename string, symmetric, verbose bool) (M *mat.Dense, err error) {
	var file *os.File
	if verbose {
		fmt.Printf("Reading coordinate matrix file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer file.Close()
	if M, err = readCoordinate(bufio.NewReader(file), symmetric); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if verbose {
		nr, nc := M.Dims()
		fmt.Printf("Matrix dimensions: %d x %d\n", nr, nc)
	}
	return
}

// WriteMatrix writes M in the dense format read by ReadMatrix.
func WriteMatrix(w io.Writer, M mat.Matrix) (err error) {
	var (
		nr, nc = M.Dims()
		bw     = bufio.NewWriter(w)
		fields = make([]string, nc)
	)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			fields[j] = strconv.FormatFloat(M.At(i, j), 'g', -1, 64)
		}
		if _, err = bw.WriteString(strings.Join(fields, " ") + "\n"); err != nil {
			return
		}
	}
	return bw.Flush()
}

func readDense(reader *bufio.Reader) (M *mat.Dense, err error) {
	var (
		data   []float64
		nr, nc int
		line   string
		eof    bool
	)
	for !eof {
		if line, eof, err = nextDataLine(reader); err != nil {
			return
		}
		if len(line) == 0 {
			continue
		}
		fields := splitFields(line)
		if nc == 0 {
			nc = len(fields)
		} else if len(fields) != nc {
			return nil, fmt.Errorf("%w: row %d has %d values, expected %d", ErrFormat, nr+1, len(fields), nc)
		}
		for _, f := range fields {
			var val float64
			if val, err = strconv.ParseFloat(f, 64); err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrFormat, nr+1, err)
			}
			data = append(data, val)
		}
		nr++
	}
	if nr == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrFormat)
	}
	M = mat.NewDense(nr, nc, data)
	return
}

func readCoordinate(reader *bufio.Reader, symmetric bool) (M *mat.Dense, err error) {
	var (
		nr, nc int
		line   string
		eof    bool
		coo    *sparse.COO
		entry  int
	)
	for !eof {
		if line, eof, err = nextDataLine(reader); err != nil {
			return
		}
		if len(line) == 0 {
			continue
		}
		fields := splitFields(line)
		if coo == nil {
			if nr, nc, err = parseDims(fields); err != nil {
				return
			}
			coo = sparse.NewCOO(nr, nc, nil, nil, nil)
			continue
		}
		entry++
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: entry %d: want \"i j value\", got %q", ErrFormat, entry, line)
		}
		var (
			i, j int
			val  float64
		)
		if i, err = strconv.Atoi(fields[0]); err == nil {
			if j, err = strconv.Atoi(fields[1]); err == nil {
				val, err = strconv.ParseFloat(fields[2], 64)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrFormat, entry, err)
		}
		if i < 0 || i >= nr || j < 0 || j >= nc {
			return nil, fmt.Errorf("%w: entry %d: index (%d, %d) outside %dx%d", ErrFormat, entry, i, j, nr, nc)
		}
		coo.Set(i, j, val)
		if symmetric && i != j {
			if j >= nr || i >= nc {
				return nil, fmt.Errorf("%w: entry %d: can not mirror (%d, %d) in %dx%d", ErrFormat, entry, i, j, nr, nc)
			}
			coo.Set(j, i, val)
		}
	}
	if coo == nil {
		return nil, fmt.Errorf("%w: missing dimensions line", ErrFormat)
	}
	M = coo.ToDense()
	return
}

func parseDims(fields []string) (nr, nc int, err error) {
	switch len(fields) {
	case 1, 2:
	default:
		return 0, 0, fmt.Errorf("%w: dimensions line must be \"n\" or \"nr nc\"", ErrFormat)
	}
	if nr, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	nc = nr
	if len(fields) == 2 {
		if nc, err = strconv.Atoi(fields[1]); err != nil {
			return 0, 0, fmt.Errorf("%w: %v", ErrFormat, err)
		}
	}
	if nr <= 0 || nc <= 0 {
		return 0, 0, fmt.Errorf("%w: dimensions %d x %d", ErrFormat, nr, nc)
	}
	return
}

// nextDataLine returns the next line trimmed of space, or "" for blank and comment lines.
func nextDataLine(reader *bufio.Reader) (line string, eof bool, err error) {
	if line, err = reader.ReadString('\n'); err != nil {
		if err != io.EOF {
			return
		}
		eof, err = true, nil
	}
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "#") {
		line = ""
	}
	return
}

func splitFields(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
