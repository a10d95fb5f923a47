package logging

import (
	"context"
	"errors"
	"log/slog"
)

// Fanout duplicates log records across several slog.Handlers.
type Fanout struct {
	targets []slog.Handler
}

func NewFanout(targets ...slog.Handler) *Fanout {
	return &Fanout{targets: targets}
}

func (f *Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, t := range f.targets {
		if t.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f *Fanout) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, t := range f.targets {
		if !t.Enabled(ctx, record.Level) {
			continue
		}
		if err := t.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	targets := make([]slog.Handler, len(f.targets))
	for i, t := range f.targets {
		targets[i] = t.WithAttrs(attrs)
	}
	return &Fanout{targets: targets}
}

func (f *Fanout) WithGroup(name string) slog.Handler {
	targets := make([]slog.Handler, len(f.targets))
	for i, t := range f.targets {
		targets[i] = t.WithGroup(name)
	}
	return &Fanout{targets: targets}
}
