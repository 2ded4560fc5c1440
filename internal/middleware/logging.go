package middleware

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

// LogRequest traces every incoming request with its method, path and
// client user agent (the mobile app sends FitCoach/1).
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Tracef(" ====> request [%s] path: [%s] [UA: %s]", r.Method, r.URL.Path, r.Header.Get("User-Agent"))
			next.ServeHTTP(w, r)
		})
	}
}
