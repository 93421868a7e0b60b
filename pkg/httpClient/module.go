package httpClient

import (
	"time"

	"go.uber.org/fx"
)

// ModuleParams 模組參數
type ModuleParams struct {
	fx.In

	ServiceName  string            `name:"serviceName" optional:"true"`
	Timeout      time.Duration     `name:"httpTimeout" optional:"true"`
	EndpointList []ServiceEndpoint `group:"endpoints"`
}

// ProvideHTTPClient 提供HTTP客戶端實例
func ProvideHTTPClient(p ModuleParams) HTTPClient {
	var opts []ClientOption

	// 設置超時
	if p.Timeout > 0 {
		opts = append(opts, WithTimeout(p.Timeout))
	}

	// 設置服務名稱
	if p.ServiceName != "" {
		opts = append(opts, WithServiceName(p.ServiceName))
	}

	// 從參數中添加端點
	if len(p.EndpointList) > 0 {
		opts = append(opts, WithServiceEndpoints(p.EndpointList))
	}

	return NewClient(opts...)
}

// Module HTTP客戶端模組
var Module = fx.Options(
	fx.Provide(
		ProvideHTTPClient,
	),
)
