package tabular

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadHeader returns the column names from the first line of a delimited
// file without parsing the rest. The line is whitespace-trimmed before
// splitting, so a file with an empty first line yields a single empty name.
func ReadHeader(path string, sep rune) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	return strings.Split(strings.TrimSpace(line), string(sep)), nil
}
