package gateway

import (
	"github.com/gin-gonic/gin"
)

// responseRecorder wraps gin.ResponseWriter to track status and bytes
// written, including writes performed by the reverse proxy which bypass
// gin's own bookkeeping.
type responseRecorder struct {
	gin.ResponseWriter
	status  int
	written int
}

func newResponseRecorder(w gin.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w, status: 200}
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.written += n
	return n, err
}

func (r *responseRecorder) Status() int {
	return r.status
}

func (r *responseRecorder) BytesWritten() int {
	return r.written
}
