package logger

import (
	"context"
	"log/slog"
	"slices"
	"time"
)

// AnnotateError attaches slog key-value pairs to err. When the error is later
// logged through a logger built by ConfigureLoggingWithOptions, the pairs are
// lifted out of the error and written as attributes of the record.
//
//	if err := merge(dst, src); err != nil {
//	    return AnnotateError(err, "op", "sum", "file", path)
//	}
//
// Returns nil if err is nil.
func AnnotateError(err error, args ...any) error {
	if err == nil {
		return nil
	}

	r := slog.NewRecord(time.Now(), slog.LevelDebug, "", 0)
	r.Add(args...)

	attrs := make([]slog.Attr, 0, r.NumAttrs())

	r.Attrs(func(attr slog.Attr) bool {
		attrs = append(attrs, attr)

		return true
	})

	return &slogError{
		err:   err,
		attrs: attrs,
	}
}

// slogError is an error carrying structured attributes.
// It unwraps to the original error, so errors.Is and errors.As see through it.
type slogError struct {
	err   error
	attrs []slog.Attr
}

func (s *slogError) Error() string {
	return s.err.Error()
}

func (s *slogError) Unwrap() error {
	return s.err
}

var _ error = (*slogError)(nil)

// collectAttrs walks err (including joined errors) and returns every attribute
// attached with AnnotateError, outermost first.
func collectAttrs(err error) []slog.Attr {
	switch e := err.(type) { //nolint:errorlint
	case nil:
		return nil
	case *slogError:
		return append(slices.Clone(e.attrs), collectAttrs(e.err)...)
	case interface{ Unwrap() []error }:
		var out []slog.Attr

		for _, inner := range e.Unwrap() {
			out = append(out, collectAttrs(inner)...)
		}

		return out
	case interface{ Unwrap() error }:
		return collectAttrs(e.Unwrap())
	default:
		return nil
	}
}

// slogErrorLogger decorates a slog.Handler: error attributes created by
// AnnotateError are replaced by the plain error and their attached attributes
// are appended to the record.
type slogErrorLogger struct {
	inner slog.Handler
}

var _ slog.Handler = (*slogErrorLogger)(nil)

func (s *slogErrorLogger) Enabled(ctx context.Context, level slog.Level) bool {
	return s.inner.Enabled(ctx, level)
}

func (s *slogErrorLogger) Handle(ctx context.Context, record slog.Record) error {
	var (
		baseAttrs []slog.Attr
		errAttrs  []slog.Attr
	)

	record.Attrs(func(attr slog.Attr) bool {
		err, ok := attr.Value.Any().(error)
		if !ok {
			baseAttrs = append(baseAttrs, attr)

			return true
		}

		extra := collectAttrs(err)
		if len(extra) == 0 {
			baseAttrs = append(baseAttrs, attr)

			return true
		}

		if se, ok := err.(*slogError); ok { //nolint:errorlint
			err = se.err
		}

		baseAttrs = append(baseAttrs, slog.Any(attr.Key, err))
		errAttrs = append(errAttrs, extra...)

		return true
	})

	if len(errAttrs) == 0 {
		return s.inner.Handle(ctx, record)
	}

	r := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	r.AddAttrs(baseAttrs...)
	r.AddAttrs(errAttrs...)

	return s.inner.Handle(ctx, r)
}

func (s *slogErrorLogger) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &slogErrorLogger{inner: s.inner.WithAttrs(attrs)}
}

func (s *slogErrorLogger) WithGroup(name string) slog.Handler {
	return &slogErrorLogger{inner: s.inner.WithGroup(name)}
}
