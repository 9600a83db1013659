package render

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetEventStreamHeaders prepares the response for server-sent events.
func SetEventStreamHeaders(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("Transfer-Encoding", "chunked")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
}

// CustomEvent renders one SSE frame. Data must already carry the "data: " prefix.
type CustomEvent struct {
	Data string
}

func (r CustomEvent) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	_, err := w.Write([]byte(r.Data + "\n\n"))
	return err
}

func (r CustomEvent) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if _, ok := header["Content-Type"]; !ok {
		header["Content-Type"] = []string{"text/event-stream"}
	}
}
