package api

import (
	"bytes"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// bufferedWriter captures the response body so the middleware can decide
// after the handler runs whether compressing is worth it.
type bufferedWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bufferedWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.buf.WriteString(s)
}

// brotliCompression compresses responses at least minSize bytes long for
// clients that advertise br support. Batch encodings of long inputs produce
// large JSON bodies of small integers, which compress extremely well.
func brotliCompression(minSize int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !acceptsBrotli(c.GetHeader("Accept-Encoding")) {
			c.Next()
			return
		}

		bw := &bufferedWriter{ResponseWriter: c.Writer}
		c.Writer = bw
		c.Next()

		data := bw.buf.Bytes()
		if len(data) < minSize {
			_, _ = bw.ResponseWriter.Write(data)
			return
		}

		bw.Header().Del("Content-Length")
		bw.Header().Set("Content-Encoding", "br")
		enc := brotli.NewWriter(bw.ResponseWriter)
		_, _ = enc.Write(data)
		_ = enc.Close()
	}
}

func acceptsBrotli(acceptEncoding string) bool {
	for _, part := range strings.Split(acceptEncoding, ",") {
		enc := strings.TrimSpace(part)
		if i := strings.IndexByte(enc, ';'); i >= 0 {
			enc = strings.TrimSpace(enc[:i])
		}
		if enc == "br" {
			return true
		}
	}
	return false
}
