package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

func esc(s string) string {
	return templ.EscapeString(s)
}

// htmlWriter keeps the first write error so components can be written top to bottom
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *htmlWriter) printf(format string, args ...any) {
	if h.err != nil {
		return
	}
	_, h.err = fmt.Fprintf(h.w, format, args...)
}

func (h *htmlWriter) render(c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		fn(h)
		return h.err
	})
}

func layout(title string, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		user := GetUser(h.ctx)

		h.printf(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.printf(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.printf(`<title>%s · AFCON Predictor</title>`, esc(title))
		h.printf(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		h.printf(`<link rel="stylesheet" href="/static/style.css"></head><body><nav>`)
		h.printf(`<a href="/">Predictions</a> <a href="/leaderboard">Leaderboard</a>`)
		if user != nil {
			if user.IsAdmin {
				h.printf(` <a href="/admin/results">Results</a>`)
			}
			h.printf(` <span class="user">%s</span>`, esc(user.DisplayName()))
			h.printf(` <form method="post" action="/logout" class="inline"><button type="submit">Log out</button></form>`)
		} else {
			h.printf(` <a href="/login">Log in</a> <a href="/signup">Sign up</a>`)
		}
		h.printf(`</nav><main>`)
		h.render(body)
		h.printf(`</main></body></html>`)
	})
}
