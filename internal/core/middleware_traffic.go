package core

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/time/rate"

	"feedguard/internal/types"
)

// clientLimiters hands out one token bucket per client IP. Buckets are created
// lazily and live for the process lifetime; the service sits behind a known
// set of plant-floor clients, so the map stays small.
type clientLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func newClientLimiters(rps float64, burst int) *clientLimiters {
	return &clientLimiters{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

// get returns the limiter for a client, creating it on first sight.
func (c *clientLimiters) get(client string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	lim, ok := c.limiters[client]
	if !ok {
		lim = rate.NewLimiter(c.rps, c.burst)
		c.limiters[client] = lim
	}
	return lim
}

// RateLimit enforces a per-client token bucket over all routes. The client
// key is the remote IP. Exceeding the bucket returns 429 with a Retry-After
// hint; the bucket refills at the configured requests-per-second rate.
func (s *Server) RateLimit(next http.Handler) http.Handler {
	limiters := newClientLimiters(
		s.Config.Traffic.RateLimitRPS,
		s.Config.Traffic.RateLimitBurst,
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientIP(r)

		if !limiters.get(client).Allow() {
			s.Logger.Warn("rate limit exceeded",
				slog.String("client", client),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)

			w.Header().Set("Retry-After", "1")
			Error(w, r, types.NewAppError(
				types.ErrCodeRateLimit,
				"rate limit exceeded, retry shortly",
				nil,
			))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client address without the ephemeral port. Falls back
// to the raw RemoteAddr if it is not in host:port form.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// gzipWriterPool recycles gzip writers across requests. Compression level 5
// trades a little ratio for handler latency.
var gzipWriterPool = sync.Pool{
	New: func() any {
		gw, _ := gzip.NewWriterLevel(nil, 5)
		return gw
	},
}

// gzipResponseWriter compresses the response body. Content-Length is dropped
// because the compressed size is not known up front.
type gzipResponseWriter struct {
	http.ResponseWriter
	gw *gzip.Writer
}

func (g *gzipResponseWriter) WriteHeader(code int) {
	g.Header().Del("Content-Length")
	g.ResponseWriter.WriteHeader(code)
}

func (g *gzipResponseWriter) Write(b []byte) (int, error) {
	return g.gw.Write(b)
}

func (g *gzipResponseWriter) Unwrap() http.ResponseWriter {
	return g.ResponseWriter
}

// GzipMiddleware compresses responses for clients that accept gzip encoding.
// Compression can be disabled via configuration (ENABLE_GZIP=false) for
// debugging with packet captures.
func (s *Server) GzipMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.Config.Traffic.EnableGzip ||
			!strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		gw := gzipWriterPool.Get().(*gzip.Writer)
		gw.Reset(w)
		defer func() {
			_ = gw.Close()
			gzipWriterPool.Put(gw)
		}()

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Add("Vary", "Accept-Encoding")

		next.ServeHTTP(&gzipResponseWriter{ResponseWriter: w, gw: gw}, r)
	})
}
