package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Logging writes one line per request once the response is done.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		if r.URL.Path == "/health" {
			return
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		reqID := chimw.GetReqID(r.Context())
		log.Printf("http %s %s status=%d bytes=%d took=%s req_id=%s",
			r.Method, strings.TrimSpace(r.URL.Path), status, ww.BytesWritten(), time.Since(start), reqID)
	})
}
