package cloudevents

import (
	"time"
)

// Source constants for event sources
const (
	SourceLabor = "/mes/labor-service"
)

// MESCloudEvent represents a CloudEvents v1.0 compliant event for the MES platform
type MESCloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	Type            string      `json:"type"`
	Source          string      `json:"source"`
	Subject         string      `json:"subject,omitempty"`
	ID              string      `json:"id"`
	Time            time.Time   `json:"time"`
	DataContentType string      `json:"datacontenttype"`
	Data            interface{} `json:"data"`

	// MES-specific extensions
	CorrelationID string `json:"mescorrelationid,omitempty"`
	WorkOrderID   string `json:"mesworkorderid,omitempty"`
	StageCode     string `json:"messtagecode,omitempty"`
}
