package file

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/jsphweid/matchalign/matchfile"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// match files can carry very long info lines
const maxLineSize = 1024 * 1024

// ReadLines decodes r as UTF-8, dropping a byte order mark, and returns
// every line with surrounding whitespace trimmed. Empty lines are kept so
// line numbers stay aligned with the source.
func ReadLines(r io.Reader) ([]string, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", len(lines)+1, err)
	}
	return lines, nil
}

func Load(path string) (*matchfile.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return matchfile.New(path, lines), nil
}

// LoadMany loads paths concurrently. Results keep the order of paths; the
// first failure cancels the rest.
func LoadMany(ctx context.Context, paths ...string) ([]*matchfile.Document, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	results := make([]*matchfile.Document, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			doc, err := Load(path)
			if err != nil {
				return err
			}
			results[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func CreateFileNumMap(paths []string) map[uint32]string {
	res := make(map[uint32]string)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}
