package middleware

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/semaphore"
)

// Concurrency admits at most n requests at once. A request that cannot get a slot
// within wait is rejected with 503.
func Concurrency(n int, wait time.Duration) func(http.Handler) http.Handler {
	if n <= 0 {
		n = 1
	}
	sem := semaphore.NewWeighted(int64(n))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !acquire(r.Context(), sem, wait) {
				busy(w)
				return
			}
			defer sem.Release(1)
			next.ServeHTTP(w, r)
		})
	}
}

func acquire(ctx context.Context, sem *semaphore.Weighted, wait time.Duration) bool {
	if wait <= 0 {
		return sem.TryAcquire(1)
	}
	ctx, cancel := context.WithTimeout(ctx, wait)
	defer cancel()
	return sem.Acquire(ctx, 1) == nil
}

func busy(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte(`{"code":"BUSY","error":"too many reports in progress, retry later"}`))
}
