package httpClient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HTTPClient 定義HTTP客戶端接口
type HTTPClient interface {
	// GetJSON 發送GET請求並將JSON響應解析到 out
	GetJSON(ctx context.Context, serviceName, path string, queryParams map[string]string, headers map[string]string, out interface{}) error

	// SetServiceEndpoint 設置或更新服務端點
	SetServiceEndpoint(endpoint ServiceEndpoint)

	// GetServiceEndpoint 獲取服務端點
	GetServiceEndpoint(serviceName string) (ServiceEndpoint, bool)
}

// Client 實現HTTPClient接口
type Client struct {
	client           *http.Client
	serviceEndpoints map[string]ServiceEndpoint
	serviceName      string // 當前服務名稱
	userAgent        string
}

// ClientOption 定義客戶端配置選項
type ClientOption func(*Client)

// WithTimeout 設置請求超時時間
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// WithServiceName 設置當前服務名稱
func WithServiceName(name string) ClientOption {
	return func(c *Client) {
		c.serviceName = name
	}
}

// WithUserAgent 設置 User-Agent，部分開獎網站會拒絕沒有 User-Agent 的請求
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithServiceEndpoints 設置服務端點
func WithServiceEndpoints(endpoints []ServiceEndpoint) ClientOption {
	return func(c *Client) {
		for _, endpoint := range endpoints {
			c.serviceEndpoints[endpoint.Name] = endpoint
		}
	}
}

// NewClient 創建新的HTTP客戶端
func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		serviceEndpoints: make(map[string]ServiceEndpoint),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// getTraceIDFromContext 從上下文中獲取追蹤ID，如果不存在則創建新的
func getTraceIDFromContext(ctx context.Context) string {
	traceID, ok := GetTraceID(ctx)
	if !ok || traceID == "" {
		// 如果上下文中沒有追蹤ID，則創建一個新的
		traceID = uuid.New().String()
	}
	return traceID
}

// GetJSON 實現GET請求
func (c *Client) GetJSON(ctx context.Context, serviceName, path string, queryParams map[string]string, headers map[string]string, out interface{}) error {
	endpoint, ok := c.GetServiceEndpoint(serviceName)
	if !ok {
		return fmt.Errorf("service endpoint not found for service: %s", serviceName)
	}

	reqURL, err := buildURL(endpoint.BaseURL, path, queryParams)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	// 設置默認頭部
	httpReq.Header.Set(HeaderAccept, ContentTypeJSON)
	httpReq.Header.Set(HeaderTraceID, getTraceIDFromContext(ctx))
	if c.userAgent != "" {
		httpReq.Header.Set(HeaderUserAgent, c.userAgent)
	}
	if c.serviceName != "" {
		httpReq.Header.Set(HeaderCaller, c.serviceName)
	}

	// 添加自定義頭部
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			ServiceName: serviceName,
			StatusCode:  resp.StatusCode,
			Body:        truncate(string(respBody), 200),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("解析 %s 響應失敗: %w", serviceName, err)
	}
	return nil
}

// SetServiceEndpoint 設置或更新服務端點
func (c *Client) SetServiceEndpoint(endpoint ServiceEndpoint) {
	c.serviceEndpoints[endpoint.Name] = endpoint
}

// GetServiceEndpoint 獲取服務端點
func (c *Client) GetServiceEndpoint(serviceName string) (ServiceEndpoint, bool) {
	endpoint, ok := c.serviceEndpoints[serviceName]
	return endpoint, ok
}

// buildURL 組合基礎地址、路徑與查詢參數
func buildURL(baseURL, path string, queryParams map[string]string) (string, error) {
	reqURL, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}

	// 移除開頭的斜杠
	reqURL.Path = fmt.Sprintf("%s/%s", strings.TrimSuffix(reqURL.Path, "/"), strings.TrimPrefix(path, "/"))

	// 添加查詢參數
	if len(queryParams) > 0 {
		q := reqURL.Query()
		for k, v := range queryParams {
			q.Add(k, v)
		}
		reqURL.RawQuery = q.Encode()
	}
	return reqURL.String(), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
