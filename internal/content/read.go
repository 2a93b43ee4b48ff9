package content

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadFile returns every complete line of the file at path. A trailing line
// without a newline is left out; the watcher delivers it once it is finished.
// A missing file is not an error: the watcher picks it up once it appears.
// Reading stops early when ctx is cancelled.
func ReadFile(ctx context.Context, path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var lines []string
	r := bufio.NewReader(file)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := r.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return lines, nil
			}
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		lines = append(lines, strings.TrimRight(line, "\r\n"))
	}
}
