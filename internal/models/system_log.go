package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SystemLog stores structured error logs for later querying.
type SystemLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Timestamp   time.Time      `gorm:"not null;index" json:"timestamp"`
	Level       string         `gorm:"size:10;not null;index" json:"level"`
	Message     string         `gorm:"type:text" json:"message"`
	Operation   string         `gorm:"size:100;index" json:"operation"`
	RequestID   string         `gorm:"size:64;index" json:"request_id"`
	ProfileID   *string        `gorm:"size:255" json:"profile_id"`
	PackageName string         `gorm:"size:255" json:"package_name"`
	ProductID   string         `gorm:"size:255" json:"product_id"`
	Error       string         `gorm:"type:text" json:"error"`
	LatencyMs   int            `json:"latency_ms"`
	Extra       datatypes.JSON `gorm:"type:jsonb" json:"extra"`
	CreatedAt   time.Time      `json:"created_at"`
}
