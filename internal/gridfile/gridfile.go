// Package gridfile reads and writes the result.txt grid format: one line per
// row, cells as comma-separated integer codes (gray -1, blue 0, red 1), no
// header. An empty grid is an empty file.
package gridfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Unknown is the code of an unfilled (gray) cell.
const Unknown = -1

// ErrMalformed is returned when a grid file cannot be parsed.
var ErrMalformed = errors.New("malformed grid file")

// Write writes codes to w, one row per line.
func Write(w io.Writer, codes [][]int) error {
	bw := bufio.NewWriter(w)
	for _, row := range codes {
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = strconv.Itoa(v)
		}
		if _, err := bw.WriteString(strings.Join(fields, ",") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes codes to path. The data goes to a temporary file in the
// same directory which is then renamed over path, so readers never see a
// partial grid.
func WriteFile(path string, codes [][]int) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if err := Write(tmp, codes); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Parse reads a grid from r.
//
// Cells that are not integers (including empty cells) read as Unknown.
// Integers other than -1, 0 and 1 are rejected, as are rows longer than the
// first row. Blank lines at the end of the input are ignored.
func Parse(r io.Reader) ([][]int, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	codes := make([][]int, 0, len(lines))
	width := 0
	for i, line := range lines {
		fields := strings.Split(line, ",")
		if i == 0 {
			width = len(fields)
		} else if len(fields) > width {
			return nil, fmt.Errorf("%w: line %d has %d cells, first line has %d",
				ErrMalformed, i+1, len(fields), width)
		}

		row := make([]int, len(fields))
		for j, f := range fields {
			v, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				row[j] = Unknown
				continue
			}
			if v < Unknown || v > 1 {
				return nil, fmt.Errorf("%w: line %d cell %d: code %d", ErrMalformed, i+1, j+1, v)
			}
			row[j] = v
		}
		codes = append(codes, row)
	}
	return codes, nil
}

// Read parses the grid file at path.
func Read(path string) ([][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	codes, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return codes, nil
}
