package pipeline

import (
	"fmt"
	"io"
	"os"

	apperr "github.com/matzehuels/lifeline/pkg/errors"
)

// ReadInput reads event text from r, rejecting anything larger than
// [apperr.MaxInputBytes] or not valid UTF-8.
func ReadInput(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, apperr.MaxInputBytes+1))
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	text := string(data)
	if err := apperr.ValidateInput(text); err != nil {
		return "", err
	}
	return text, nil
}

// ReadInputFile reads event text from a file. "-" reads standard input.
func ReadInputFile(path string) (string, error) {
	if path == "-" {
		return ReadInput(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperr.Wrap(apperr.ErrCodeFileNotFound, err, "input file %s", path)
		}
		return "", fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return ReadInput(f)
}
