// internal/validation/middleware.go
//
// Validation middleware (the per-request dispatcher).
//
/*
Context
--------
Middleware wraps a route handler.  For each request it walks the installed
registry snapshot, reads each field from its source, and runs the field's
chain.  The first rejection ends the pass and becomes the response; when
everything passes, the request goes to next untouched.

Per source
----------
  • path    – read through ParamFunc (chi route context by default).  A
              parameter not bound on this route is skipped.
  • query   – the raw query is decoded at most once per request, on the
              first query key.  A decode error aborts with 500.  Absent
              names are skipped.
  • header  – first value of the canonical header.  Absent → skipped.
  • cookie  – value of the named cookie.  Absent → skipped.

Responses
---------
  • rejection       → ValidationError status, encoded errorBody.
  • query fault     → 500 plain text.
  • encode fault    → 500 plain text naming the field.

Notes
-----
  • Install per route (chi `r.With(...)`), not with `r.Use` on the root
    mux, or route parameters are not yet bound.
  • The request body is never read.
  • Oxford commas, two spaces after periods.
*/
package validation

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/paramguard/internal/metrics"
	"github.com/yanizio/paramguard/internal/respond"
)

/*──────────────────────────── accessors ────────────────────────────────────*/

// ParamFunc reads a route parameter.  ok is false when the route does not
// bind name.
type ParamFunc func(r *http.Request, name string) (value string, ok bool)

// QueryDecoder parses the whole query string of r.
type QueryDecoder func(r *http.Request) (map[string]string, error)

// ChiParam looks name up in the chi route context.  Unlike chi.URLParam it
// tells an unbound parameter apart from an empty one.
func ChiParam(r *http.Request, name string) (string, bool) {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "", false
	}
	for i := len(rctx.URLParams.Keys) - 1; i >= 0; i-- {
		if rctx.URLParams.Keys[i] == name {
			return rctx.URLParams.Values[i], true
		}
	}
	return "", false
}

// DecodeQuery parses r.URL.RawQuery.  When a name repeats the first value
// wins.  An empty query yields an empty map.
func DecodeQuery(r *http.Request) (map[string]string, error) {
	vals, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(vals))
	for k, v := range vals {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out, nil
}

/*──────────────────────────── options ──────────────────────────────────────*/

// Option customises Middleware.
type Option func(*dispatcher)

// WithParamFunc replaces the route-parameter accessor.
func WithParamFunc(fn ParamFunc) Option { return func(d *dispatcher) { d.param = fn } }

// WithQueryDecoder replaces the query-string decoder.
func WithQueryDecoder(fn QueryDecoder) Option { return func(d *dispatcher) { d.decode = fn } }

// WithEncoder replaces the encoder used for error bodies.  Use the same
// encoder the application uses for its own payloads.
func WithEncoder(enc respond.Encoder) Option { return func(d *dispatcher) { d.encode = enc } }

/*──────────────────────────── middleware ───────────────────────────────────*/

type dispatcher struct {
	reg    *Registry
	param  ParamFunc
	decode QueryDecoder
	encode respond.Encoder
}

// errorBody is what a rejected request receives.
type errorBody struct {
	Source     Source `json:"source"`
	Field      string `json:"field"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// Middleware returns a chi-compatible middleware bound to a snapshot of reg.
func Middleware(reg *Registry, opts ...Option) func(http.Handler) http.Handler {
	d := &dispatcher{
		reg:    reg.snapshot(),
		param:  ChiParam,
		decode: DecodeQuery,
		encode: respond.JSONEncoder,
	}
	for _, o := range opts {
		o(d)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if d.check(w, r) {
				metrics.RequestsForwardedTotal.Inc()
				next.ServeHTTP(w, r)
			}
		})
	}
}

// check runs every chain against r.  It returns true when r may proceed;
// otherwise a response has already been written.
func (d *dispatcher) check(w http.ResponseWriter, r *http.Request) bool {
	var query map[string]string // decoded lazily, once

	for _, key := range d.reg.order {
		var (
			value   string
			present bool
		)

		switch key.Source {
		case SourcePath:
			value, present = d.param(r, key.Name)

		case SourceQuery:
			if query == nil {
				q, err := d.decode(r)
				if err != nil {
					metrics.QueryParseErrorsTotal.Inc()
					zap.L().Warn("query decode failed",
						zap.String("path", r.URL.Path),
						zap.Error(err))
					respond.Text(w, http.StatusInternalServerError,
						fmt.Sprintf("cannot read query parameters: %v", err))
					return false
				}
				if q == nil {
					q = map[string]string{}
				}
				query = q
			}
			value, present = query[key.Name]

		case SourceHeader:
			if vals := r.Header.Values(key.Name); len(vals) > 0 {
				value, present = vals[0], true
			}

		case SourceCookie:
			if c, err := r.Cookie(key.Name); err == nil {
				value, present = c.Value, true
			}
		}

		if !present {
			continue
		}

		for _, fn := range d.reg.chains[key] {
			if err := fn(value); err != nil {
				d.reject(w, r, key, asValidationError(err))
				return false
			}
		}
	}
	return true
}

// reject writes the structured failure, degrading to plain text when the
// body cannot be encoded.
func (d *dispatcher) reject(w http.ResponseWriter, r *http.Request, key FieldKey, ve *ValidationError) {
	metrics.ValidationFailuresTotal.WithLabelValues(key.Source.String()).Inc()
	zap.L().Debug("request rejected",
		zap.String("path", r.URL.Path),
		zap.Stringer("field", key),
		zap.Int("status", ve.Status()),
		zap.String("message", ve.Message))

	body := errorBody{
		Source:     key.Source,
		Field:      key.Name,
		StatusCode: ve.Status(),
		Message:    ve.Message,
	}
	if err := respond.JSON(w, ve.Status(), body, d.encode); err != nil {
		metrics.EncodeFallbacksTotal.Inc()
		zap.L().Error("validation error encode failed",
			zap.Stringer("field", key),
			zap.Error(err))
		respond.Text(w, http.StatusInternalServerError,
			fmt.Sprintf("cannot encode validation error for %s: %v", key, err))
	}
}
