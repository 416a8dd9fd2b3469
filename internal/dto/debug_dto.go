package dto

import "encoding/json"

type ServiceAccountInfo struct {
	ClientEmail string `json:"client_email"`
	ProjectID   string `json:"project_id"`
}

type DebugResponse struct {
	Timestamp       string             `json:"timestamp"`
	ServiceAccount  ServiceAccountInfo `json:"serviceAccount"`
	PackageName     string             `json:"packageName"`
	AuthTest        string             `json:"authTest"`
	Scopes          []string           `json:"scopes"`
	APIVersion      string             `json:"apiVersion"`
	AppDetails      json.RawMessage    `json:"appDetails,omitempty"`
	AppDetailsError string             `json:"appDetailsError,omitempty"`
}

type DebugErrorResponse struct {
	Error     string `json:"error"`
	Code      int    `json:"code,omitempty"`
	Timestamp string `json:"timestamp"`
}
