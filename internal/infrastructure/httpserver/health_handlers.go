package httpserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/avatarctic/headless-blog/internal/core/ports"
)

const healthCheckTimeout = 2 * time.Second

type healthResponse struct {
	Status       string            `json:"status"`
	Service      string            `json:"service"`
	Timestamp    string            `json:"timestamp"`
	Dependencies map[string]string `json:"dependencies"`
	Errors       map[string]string `json:"errors,omitempty"`
}

// healthCheck probes every dependency concurrently. A failing optional
// dependency reports "degraded" with 200; any other failure reports
// "unhealthy" with 503.
func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	resp := healthResponse{
		Status:       "healthy",
		Service:      "headless-blog",
		Dependencies: make(map[string]string, len(s.healthCheckers)),
	}
	var mu sync.Mutex
	var g errgroup.Group
	for _, hc := range s.healthCheckers {
		if hc == nil {
			continue
		}
		hc := hc
		g.Go(func() error {
			err := hc.Check(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				resp.Dependencies[hc.Name()] = "healthy"
				return nil
			}
			resp.Dependencies[hc.Name()] = "unhealthy"
			if resp.Errors == nil {
				resp.Errors = make(map[string]string)
			}
			resp.Errors[hc.Name()] = err.Error()
			if opt, ok := hc.(ports.OptionalDependency); ok && opt.Optional() {
				if resp.Status == "healthy" {
					resp.Status = "degraded"
				}
			} else {
				resp.Status = "unhealthy"
			}
			return nil
		})
	}
	_ = g.Wait()
	resp.Timestamp = time.Now().UTC().Format(time.RFC3339)

	code := http.StatusOK
	if resp.Status == "unhealthy" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, resp)
}
