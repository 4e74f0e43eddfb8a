package vision

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// openImage is a variable so tests can observe that the handle is closed.
var openImage = func(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	return f, nil
}
