package transport

import (
	"strings"

	"github.com/valyala/fasthttp"
)

// FormString reads a trimmed value from a POSTed form.
func FormString(ctx *fasthttp.RequestCtx, key string) string {
	return strings.TrimSpace(string(ctx.PostArgs().Peek(key)))
}

// QueryString reads a trimmed value from the query string.
func QueryString(ctx *fasthttp.RequestCtx, key string) string {
	return strings.TrimSpace(string(ctx.QueryArgs().Peek(key)))
}

// RouteParam reads a path parameter set by the router.
func RouteParam(ctx *fasthttp.RequestCtx, key string) string {
	value, _ := ctx.UserValue(key).(string)
	return value
}
