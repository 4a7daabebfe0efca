package ports

import (
	"time"

	"github.com/gin-gonic/gin"
)

type MetricsPort interface {
	RecordMetrics(c *gin.Context, start time.Time)
}

// EventMetricsPort counts bus traffic: direction is "published" or "consumed".
type EventMetricsPort interface {
	RecordEvent(direction, event, outcome string)
}
