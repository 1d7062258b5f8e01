// Package source produces the data to be sorted: random values or
// line-delimited unsigned integers from a file or a pipe.
package source

import (
	"bufio"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/keilerkonzept/sortvis/internal/errors"
)

// Random returns count values in [1, max]. The same seed yields the same data.
func Random(count int, max uint32, seed int64) []uint32 {
	if max < 1 {
		max = 1
	}
	rng := rand.New(rand.NewSource(seed))
	out := make([]uint32, count)
	for i := range out {
		out[i] = uint32(rng.Int63n(int64(max))) + 1
	}
	return out
}

// Read parses one unsigned integer per line. Blank lines are skipped; any
// other line that does not parse is an input error.
func Read(r io.Reader) ([]uint32, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var out []uint32
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		v, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return nil, errors.InputMalformed(line, text)
		}
		out = append(out, uint32(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(errors.Op("source.Read"), errors.KindInput, err)
	}
	return out, nil
}

// ReadFile reads values from the file at path.
func ReadFile(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.InputOpenFailed(path, err)
	}
	defer func() { _ = f.Close() }()
	return Read(f)
}
