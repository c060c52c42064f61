package server

import (
	"context"

	"github.com/mitchellh/mapstructure"
)

// Validator is implemented by request types that check their own fields.
type Validator interface {
	Validate() error
}

// handlerFunc executes a typed request. A nil reply sends nothing back.
type handlerFunc[Req any] func(ctx context.Context, req Req) (*Reply, error)

type route func(ctx context.Context, msgType string, data map[string]any) (*Reply, error)

// typed decodes message data into Req, validates it and runs fn.
func typed[Req any](fn handlerFunc[Req]) route {
	return func(ctx context.Context, msgType string, data map[string]any) (*Reply, error) {
		var req Req
		if err := decode(data, &req); err != nil {
			return nil, &DecodeError{Type: msgType, Cause: err}
		}
		if v, ok := any(req).(Validator); ok {
			if err := v.Validate(); err != nil {
				return nil, err
			}
		}
		return fn(ctx, req)
	}
}

// decode maps JSON-decoded data onto out. JSON numbers arrive as float64 and
// clients sometimes send numbers as strings, so weak typing is enabled.
func decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}
