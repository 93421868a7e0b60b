package httpClient

import "fmt"

const (
	// HTTP頭部常量
	HeaderTraceID   = "X-Trace-ID"
	HeaderCaller    = "X-Caller-Service"
	HeaderAccept    = "Accept"
	HeaderUserAgent = "User-Agent"

	// 內容類型
	ContentTypeJSON = "application/json"
)

// ServiceEndpoint 定義外部服務端點
type ServiceEndpoint struct {
	Name    string `json:"name"`
	BaseURL string `json:"baseUrl"`
}

// StatusError 非 2xx 響應
type StatusError struct {
	ServiceName string
	StatusCode  int
	Body        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("service %s responded with status %d: %s", e.ServiceName, e.StatusCode, e.Body)
}
