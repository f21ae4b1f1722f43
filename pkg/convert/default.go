package convert

import (
	"sync"

	"github.com/bastiangx/zhconv/data"
	"github.com/bastiangx/zhconv/pkg/compiler"
)

var (
	defaultOnce sync.Once
	defaultConv *Converter
	defaultErr  error
)

// Default returns the process-wide converter built from the embedded
// dictionary data. It is initialized lazily on first use, exactly once even
// under concurrent first access, and never mutated afterwards. A failure
// here is fatal for conversion: the same error is returned to every caller.
func Default() (*Converter, error) {
	defaultOnce.Do(func() {
		artifact, err := compiler.Compile(data.FS)
		if err != nil {
			defaultErr = err
			return
		}
		defaultConv, defaultErr = New(artifact)
	})
	return defaultConv, defaultErr
}
