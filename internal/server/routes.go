package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"layoutctl/internal/runner"
)

// WorkerExitCodeHeader carries the worker's exit status on failure
// responses so callers can propagate it without parsing the envelope.
const WorkerExitCodeHeader = "X-Worker-Exit-Code"

type invokeRequest struct {
	Payload     string `json:"payload"`
	CapturePath string `json:"capture_path"`
}

func (s *Service) registerRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.startedAt).String(),
			"service": s.cfg.ServiceName,
			"version": s.cfg.Version,
		})
	})

	r.GET("/tasks", func(c *gin.Context) {
		list := s.registry.List()
		out := make([]gin.H, 0, len(list))
		for _, meta := range list {
			out = append(out, gin.H{
				"id":          meta.ID,
				"name":        meta.Name,
				"description": meta.Description,
			})
		}
		c.JSON(http.StatusOK, gin.H{"tasks": out})
	})

	r.POST("/tasks/:id", s.handleInvoke)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// handleInvoke mirrors the CLI envelope contract over HTTP: success is
// the worker's text verbatim, worker failure is the failure envelope
// with the exit code in a header.
func (s *Service) handleInvoke(c *gin.Context) {
	id := c.Param("id")
	spec, ok := s.registry.Resolve(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown task " + id})
		return
	}

	var req invokeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	res, err := s.runner.Invoke(spec, req.Payload, req.CapturePath)
	if err != nil {
		if errors.Is(err, runner.ErrNoPayload) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if res.Failed {
		c.Header(WorkerExitCodeHeader, strconv.Itoa(int(res.ExitCode)))
		c.Data(http.StatusBadGateway, "application/json; charset=utf-8", []byte(res.Emitted))
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(res.Emitted))
}
