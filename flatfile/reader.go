package flatfile

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arloliu/tsframe/compress"
	"github.com/arloliu/tsframe/frame"
	"github.com/arloliu/tsframe/internal/options"
	"github.com/arloliu/tsframe/timeindex"
)

// Read reads every series line from r. The compression option must match
// the writer's.
//
// Returns:
//   - []frame.Series: the series in file order, nil for an empty body
//   - error: a parse, decompression or read error
func Read(r io.Reader, opts ...Option) ([]frame.Series, error) {
	cfg := defaultFileConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}
	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	body, err := codec.Decompress(raw)
	if err != nil {
		return nil, err
	}

	return parseBody(body)
}

// parseBody splits the body into lines and parses each. Blank lines are
// skipped. Lines are split manually rather than with bufio.Scanner because a
// wide series easily exceeds the default token limit.
func parseBody(body []byte) ([]frame.Series, error) {
	var series []frame.Series
	for lineNo := 1; len(body) > 0; lineNo++ {
		line := body
		if i := bytes.IndexByte(body, '\n'); i >= 0 {
			line, body = body[:i], body[i+1:]
		} else {
			body = nil
		}

		line = bytes.TrimSuffix(line, []byte{'\r'})
		if len(line) == 0 {
			continue
		}

		s, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		series = append(series, s)
	}

	return series, nil
}

func parseLine(line []byte) (frame.Series, error) {
	fields := strings.Split(string(line), ",")

	values := make([]float64, len(fields)-1)
	for i, field := range fields[1:] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return frame.Series{}, fmt.Errorf("value %d: %w", i, err)
		}
		values[i] = v
	}

	return frame.Series{Key: fields[0], Data: values}, nil
}

// ReadIndex reads and parses a text-encoded index.
func ReadIndex(r io.Reader) (timeindex.Index, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return timeindex.Parse(strings.TrimSpace(string(raw)))
}

// ReadFile reads the series from the file at path and the index from its
// sidecar at path+IndexSuffix.
//
// Returns:
//   - []frame.Series: the series in file order
//   - timeindex.Index: the sidecar index
//   - error: a parse, decompression or file system error
func ReadFile(path string, opts ...Option) ([]frame.Series, timeindex.Index, error) {
	sidecar, err := os.ReadFile(path + IndexSuffix)
	if err != nil {
		return nil, nil, err
	}
	idx, err := timeindex.Parse(strings.TrimSpace(string(sidecar)))
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	series, err := Read(f, opts...)
	if err != nil {
		return nil, nil, err
	}

	return series, idx, nil
}

// Load reads a file pair written by WriteFile into a collection with
// default partitioning. Use ReadFile and frame.New directly to control
// partitioning.
//
// Returns:
//   - *frame.Collection: the loaded collection
//   - error: any ReadFile error, or errs.ErrLengthMismatch when a line does
//     not match the sidecar index
func Load(path string, opts ...Option) (*frame.Collection, error) {
	series, idx, err := ReadFile(path, opts...)
	if err != nil {
		return nil, err
	}

	return frame.New(idx, series)
}
