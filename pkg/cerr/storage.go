package cerr

import (
	"errors"
	"fmt"

	"github.com/kazz187/pmgraph/pkg/storage"
)

func WrapStorageReadError(target string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return NewError(NotFound, fmt.Sprintf("%s not found", target), err)
	}
	return NewError(Internal, fmt.Sprintf("failed to read %s", target), err)
}

// WrapRootError classifies a failure to open the corpus root. The root is the
// one location whose absence is fatal.
func WrapRootError(root string, err error) error {
	return NewError(Unavailable, fmt.Sprintf("cannot access corpus root %s", root), err)
}
