// Package capabilities fetches and decodes remote map service
// self-descriptions, and drives the sequential fetch-and-build pipeline that
// turns background services into layer descriptors.
package capabilities

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/nationalmap/px3-catalog-server/pkg/layers"
)

// ServiceError is an error payload returned by the remote service with a
// successful HTTP status. ArcGIS endpoints report failures this way, so the
// body has to be sniffed before it can be treated as a capabilities document.
type ServiceError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service returned error %d: %s", e.Code, e.Message)
}

// ParseDocument decodes a capabilities document from a raw response body.
// Invalid JSON and embedded service error payloads are rejected before the
// strict decode.
func ParseDocument(data []byte) (*layers.Capabilities, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("capabilities response is not valid JSON")
	}

	if errField := gjson.GetBytes(data, "error"); errField.Exists() {
		svcErr := &ServiceError{
			Code:    int(errField.Get("code").Int()),
			Message: errField.Get("message").String(),
		}
		return nil, svcErr
	}

	var caps layers.Capabilities
	if err := json.Unmarshal(data, &caps); err != nil {
		return nil, fmt.Errorf("failed to decode capabilities document: %w", err)
	}
	return &caps, nil
}
