// Package copyfile provides the built-in "copy" action: the input
// artifact is copied unchanged into the output directory.
package copyfile

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"morph/internal/transform"
)

type action struct {
	input string
}

func (a *action) Transform(_ context.Context, outputs *transform.Outputs) error {
	dest, err := outputs.File(filepath.Base(a.input))
	if err != nil {
		return err
	}

	src, err := os.Open(a.input)
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func init() {
	transform.RegisterAction("copy", func(services *transform.ServiceLookup) (transform.Action, error) {
		input, err := transform.Inject[string](services, transform.CapPrimaryInput)
		if err != nil {
			return nil, err
		}
		return &action{input: input}, nil
	})
}
