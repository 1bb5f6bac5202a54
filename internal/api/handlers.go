package api

import (
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/strictenc/strictenc"
	"github.com/strictenc/strictenc/errs"
	"github.com/strictenc/strictenc/internal/coerce"
	"github.com/strictenc/strictenc/opcode"
)

type encodeRequest struct {
	N            any    `json:"n"`
	Instructions string `json:"instructions"`
}

type batchRequest struct {
	Values       []any  `json:"values"`
	Instructions string `json:"instructions"`
}

type textRequest struct {
	Text         string `json:"text"`
	Instructions string `json:"instructions"`
}

type bytesRequest struct {
	Data         string `json:"data"` // base64
	Instructions string `json:"instructions"`
}

func (s *Server) encodeOne(c *gin.Context) {
	var req encodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	start := time.Now()
	results, err := s.encoder.EncodeValue(req.N, req.Instructions)
	s.observe("single", start, err)
	if err != nil {
		s.encodeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) encodeBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	start := time.Now()
	values := make([]int64, len(req.Values))
	for i, v := range req.Values {
		n, err := coerce.Int64(v)
		if err != nil {
			s.observe("batch", start, errs.ErrInvalidInput)
			s.encodeError(c, opcode.NewError(opcode.ErrCodeInvalidInput, "values must be integers", err.Error()))
			return
		}
		values[i] = n
	}

	results, err := s.encoder.EncodeMany(values, req.Instructions)
	s.observe("batch", start, err)
	if err != nil {
		s.encodeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) encodeText(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	start := time.Now()
	results, err := s.encoder.EncodeText(req.Text, req.Instructions)
	s.observe("text", start, err)
	if err != nil {
		s.encodeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) encodeBytes(c *gin.Context) {
	var req bytesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, "data must be base64")
		return
	}

	start := time.Now()
	results, err := s.encoder.EncodeBytes(data, req.Instructions)
	s.observe("bytes", start, err)
	if err != nil {
		s.encodeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) clearCache(c *gin.Context) {
	s.encoder.ClearCache()
	c.Status(http.StatusNoContent)
}

func (s *Server) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":          "strictenc",
		"version":       strictenc.Version,
		"cache_entries": s.encoder.Cache().Len(),
	})
}

// encodeError maps encoder failures to responses. Malformed inputs and
// unparseable instructions are the caller's fault, not ours, so they map to
// 400 with the structured error body.
func (s *Server) encodeError(c *gin.Context, err error) {
	if errors.Is(err, errs.ErrInvalidInput) || errors.Is(err, errs.ErrUnsupportedOperation) {
		var e *opcode.Error
		if errors.As(err, &e) {
			c.JSON(http.StatusBadRequest, e)
			return
		}
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	errorResponse(c, http.StatusInternalServerError, err.Error())
}

func (s *Server) observe(op string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.EncodeRequests.WithLabelValues(op).Inc()
	s.metrics.EncodeDuration.Observe(time.Since(start).Seconds())
	if err == nil {
		return
	}
	code := "OTHER"
	var e *opcode.Error
	if errors.As(err, &e) {
		code = e.Code
	} else if errors.Is(err, errs.ErrInvalidInput) {
		code = opcode.ErrCodeInvalidInput
	}
	s.metrics.EncodeFailures.WithLabelValues(code).Inc()
}
