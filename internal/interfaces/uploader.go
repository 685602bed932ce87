package interfaces

import (
	"context"
	"io"
)

type Uploader interface {
	Upload(ctx context.Context, folder string, filename string, r io.Reader) (string, error)
}
