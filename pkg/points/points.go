// Package points reads site coordinates from simple "x,y" text files.
package points

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/0x5EED/go-voronoi/pkg/voronoi"
)

// Read parses one "x,y" pair per line. Blank lines are skipped; any other
// malformed line fails with its line number in the error.
func Read(r io.Reader) ([]voronoi.Vertex, error) {
	var sites []voronoi.Vertex
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			return nil, errors.Newf("points: line %d: want \"x,y\", got %q", lineNo, line)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "points: line %d: bad x coordinate", lineNo)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "points: line %d: bad y coordinate", lineNo)
		}
		sites = append(sites, voronoi.Vertex{X: x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "points: read")
	}
	return sites, nil
}

// ReadFile reads sites from a file on disk.
func ReadFile(path string) ([]voronoi.Vertex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "points: open")
	}
	defer f.Close()
	return Read(f)
}
