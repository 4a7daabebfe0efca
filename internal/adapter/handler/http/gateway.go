package http

import (
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/garagehub/garage_services/internal/config"
	"github.com/garagehub/garage_services/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/tomasen/realip"
)

// GatewayRoute forwards every request under Prefix to Target with the prefix stripped.
type GatewayRoute struct {
	Prefix string
	Target string
}

// GatewayRoutes is the prefix table of the public API.
func GatewayRoutes(services *config.Services) []GatewayRoute {
	return []GatewayRoute{
		{Prefix: "/auth", Target: services.AuthURL},
		{Prefix: "/users", Target: services.UserURL},
		{Prefix: "/maintenances", Target: services.MaintenanceURL},
		{Prefix: "/vehicules", Target: services.VehicleURL},
	}
}

// Identity headers set for upstream services once the gate has verified a token.
const (
	userIDHeader   = "X-User-ID"
	userRoleHeader = "X-User-Role"
)

// publicPaths stay reachable without a token when the gate is on.
var publicPaths = map[string]bool{
	"/auth/login":  true,
	"/auth/signup": true,
}

type GatewayHandler struct {
	proxies map[string]*httputil.ReverseProxy
	logger  ports.LoggerPort
	metrics ports.MetricsPort
}

func NewGatewayHandler(routes []GatewayRoute, logger ports.LoggerPort, metrics ports.MetricsPort) *GatewayHandler {
	h := &GatewayHandler{
		proxies: make(map[string]*httputil.ReverseProxy, len(routes)),
		logger:  logger,
		metrics: metrics,
	}
	for _, route := range routes {
		if route.Target == "" {
			logger.Error("Missing service URL, route disabled", map[string]interface{}{
				"prefix": route.Prefix,
			})
			continue
		}
		target, err := url.Parse(route.Target)
		if err != nil || target.Host == "" {
			logger.Error("Invalid service URL, route disabled", map[string]interface{}{
				"prefix": route.Prefix,
				"target": route.Target,
			})
			continue
		}
		h.proxies[route.Prefix] = h.newProxy(route.Prefix, target)
	}
	return h
}

func (h *GatewayHandler) newProxy(prefix string, target *url.URL) *httputil.ReverseProxy {
	return &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(target)
			r.Out.URL.Path = joinPath(target.Path, strings.TrimPrefix(r.In.URL.Path, prefix))
			r.Out.URL.RawPath = ""
			r.Out.Header.Set("X-Real-IP", realip.FromRequest(r.In))
			r.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			h.logger.Error("Proxy error", map[string]interface{}{
				"error":  err.Error(),
				"prefix": prefix,
				"path":   r.URL.Path,
			})
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(errorResponse{Message: "Bad gateway: " + prefix[1:] + " service unreachable"})
		},
	}
}

func joinPath(base, rest string) string {
	if rest == "" {
		rest = "/"
	}
	return strings.TrimSuffix(base, "/") + rest
}

// Register mounts one proxy per configured prefix on the engine.
func (h *GatewayHandler) Register(router gin.IRouter) {
	for prefix := range h.proxies {
		proxy := h.proxies[prefix]
		handler := func(c *gin.Context) {
			start := time.Now()
			defer func() {
				h.metrics.RecordMetrics(c, start)
			}()
			forwardIdentity(c)
			proxy.ServeHTTP(c.Writer, c.Request)
		}
		router.Any(prefix, handler)
		router.Any(prefix+"/*path", handler)
	}
}

// forwardIdentity never trusts client supplied identity headers.
func forwardIdentity(c *gin.Context) {
	c.Request.Header.Del(userIDHeader)
	c.Request.Header.Del(userRoleHeader)
	if payload, ok := getAuthPayload(c, authorizationPayloadKey); ok {
		c.Request.Header.Set(userIDHeader, strconv.FormatInt(payload.UserID, 10))
		c.Request.Header.Set(userRoleHeader, string(payload.Role))
	}
}

// Routes lists the mounted prefixes.
func (h *GatewayHandler) Routes() []string {
	prefixes := make([]string, 0, len(h.proxies))
	for prefix := range h.proxies {
		prefixes = append(prefixes, prefix)
	}
	return prefixes
}

// @Summary Gateway status
// @Tags gateway
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /status [get]
func (h *GatewayHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"routes": h.Routes(),
	})
}

// GatewayAuth applies AuthMiddleware to everything except the public auth endpoints.
func GatewayAuth(auth gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if publicPaths[strings.TrimSuffix(c.Request.URL.Path, "/")] {
			c.Next()
			return
		}
		auth(c)
	}
}
