package views

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"go.uber.org/zap"
)

// Boundary renders child and, if it fails, renders fallback instead. A child
// that returns an error or panics is logged and its partial output discarded;
// the failure never reaches the caller. A nil fallback selects the default
// apology UI.
func Boundary(log *zap.Logger, fallback, child templ.Component) templ.Component {
	if log == nil {
		log = zap.NewNop()
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		err := renderGuarded(ctx, child, &buf)
		if err == nil {
			_, err = w.Write(buf.Bytes())
			return err
		}
		log.Error("render failed", zap.Error(err))
		fb := fallback
		if fb == nil {
			fb = ErrorFallback(err)
		}
		return fb.Render(ctx, w)
	})
}

func renderGuarded(ctx context.Context, c templ.Component, w io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", rerr)
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.Render(ctx, w)
}

// ErrorFallback is the default apology shown in place of a failed body.
func ErrorFallback(err error) templ.Component {
	return component(func(b *bytes.Buffer) {
		b.WriteString(`<div class="min-h-[60vh] flex items-center justify-center bg-gray-50">`)
		b.WriteString(`<div class="max-w-md w-full bg-white shadow-lg rounded-lg p-8">`)
		tag(b, "h1", "text-2xl font-bold text-red-600 mb-4", "Something went wrong")
		tag(b, "p", "text-gray-600 mb-4", "We apologize for the inconvenience. An unexpected error has occurred.")
		if err != nil {
			b.WriteString(`<details class="mb-4"><summary class="cursor-pointer text-sm text-gray-500">Error details</summary>`)
			tag(b, "pre", "mt-2 text-xs bg-gray-100 p-2 rounded overflow-auto", err.Error())
			b.WriteString(`</details>`)
		}
		b.WriteString(`<a href="" class="block text-center w-full bg-teal-500 text-white px-4 py-2 rounded hover:bg-teal-600 transition-colors">Reload Page</a>`)
		b.WriteString(`</div></div>`)
	})
}
