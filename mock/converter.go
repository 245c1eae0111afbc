package mock

import "github.com/fwojciec/pinemd"

var _ pinemd.Converter = (*Converter)(nil)

// Converter is a mock implementation of pinemd.Converter.
type Converter struct {
	ConvertFn func(raw []byte) (string, error)
}

func (c *Converter) Convert(raw []byte) (string, error) {
	return c.ConvertFn(raw)
}
