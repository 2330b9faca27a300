package log

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
)

type PrettyJSONHandlerOptions struct {
	slog.HandlerOptions
	PrettyPrint bool
}

// NewPrettyJSONHandler returns a JSON handler writing to w. With PrettyPrint
// enabled every record is re-indented before it is written, which keeps local
// development output readable. Production runs leave it off and get the plain
// single line JSON of slog.JSONHandler.
func NewPrettyJSONHandler(w io.Writer, opts *PrettyJSONHandlerOptions) slog.Handler {
	if opts == nil {
		opts = &PrettyJSONHandlerOptions{}
	}

	return &prettyJSONHandler{
		JSONHandler: slog.NewJSONHandler(w, &opts.HandlerOptions),
		writer:      w,
		opts:        &opts.HandlerOptions,
		indent:      opts.PrettyPrint,
	}
}

type prettyJSONHandler struct {
	*slog.JSONHandler
	writer io.Writer
	opts   *slog.HandlerOptions
	indent bool
}

func (h prettyJSONHandler) Handle(ctx context.Context, record slog.Record) error {
	if !h.indent {
		return h.JSONHandler.Handle(ctx, record)
	}

	// render the record compactly first, then indent the finished line
	var compact bytes.Buffer
	if err := slog.NewJSONHandler(&compact, h.opts).Handle(ctx, record); err != nil {
		return err
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, compact.Bytes(), "", "  "); err != nil {
		return err
	}

	_, err := h.writer.Write(indented.Bytes())
	return err
}
