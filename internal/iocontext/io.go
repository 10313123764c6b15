// Package iocontext carries the command's I/O streams in a context so tests can capture them.
package iocontext

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
)

// IO holds the streams a command reads and writes.
type IO struct {
	Out    io.Writer
	ErrOut io.Writer
	In     io.Reader
}

// DefaultIO returns the process streams.
func DefaultIO() *IO {
	return &IO{Out: os.Stdout, ErrOut: os.Stderr, In: os.Stdin}
}

// Buffers returns an IO backed by in-memory buffers, with stdin preloaded from input.
func Buffers(input string) (*IO, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return &IO{Out: out, ErrOut: errOut, In: strings.NewReader(input)}, out, errOut
}

type ioKey struct{}

// WithIO adds IO streams to a context.
func WithIO(ctx context.Context, streams *IO) context.Context {
	return context.WithValue(ctx, ioKey{}, streams)
}

// GetIO retrieves IO streams from ctx, defaulting to the process streams.
func GetIO(ctx context.Context) *IO {
	if streams, ok := ctx.Value(ioKey{}).(*IO); ok && streams != nil {
		return streams
	}
	return DefaultIO()
}
