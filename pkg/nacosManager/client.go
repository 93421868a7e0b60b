package nacosManager

import (
	"fmt"

	"github.com/nacos-group/nacos-sdk-go/clients"
	"github.com/nacos-group/nacos-sdk-go/clients/config_client"
	"github.com/nacos-group/nacos-sdk-go/common/constant"
	"github.com/nacos-group/nacos-sdk-go/vo"
)

// NacosConfig 存儲 Nacos 連接配置
type NacosConfig struct {
	IpAddr      string
	Port        uint64
	NamespaceId string
	Group       string
	DataId      string
	LogDir      string
	CacheDir    string
	Username    string
	Password    string
	TimeoutMs   uint64
}

// NacosClient 提供對 Nacos 配置中心的訪問
type NacosClient interface {
	GetConfig(dataId, group string) (string, error)
}

// nacosClientImpl 是 NacosClient 介面的實作
type nacosClientImpl struct {
	configClient config_client.IConfigClient
}

func (n *nacosClientImpl) GetConfig(dataId, group string) (string, error) {
	return n.configClient.GetConfig(vo.ConfigParam{
		DataId: dataId,
		Group:  group,
	})
}

// clientConfig 組合 SDK 的客戶端配置
func clientConfig(config *NacosConfig) constant.ClientConfig {
	timeout := config.TimeoutMs
	if timeout == 0 {
		timeout = 5000
	}
	logDir, cacheDir := config.LogDir, config.CacheDir
	if logDir == "" {
		logDir = "/tmp/nacos/log"
	}
	if cacheDir == "" {
		cacheDir = "/tmp/nacos/cache"
	}

	return constant.ClientConfig{
		NamespaceId:         config.NamespaceId,
		TimeoutMs:           timeout,
		NotLoadCacheAtStart: true,
		LogDir:              logDir,
		CacheDir:            cacheDir,
		LogLevel:            "error",
		Username:            config.Username,
		Password:            config.Password,
	}
}

// NewNacosClient 創建一個新的 Nacos 配置客戶端
func NewNacosClient(config *NacosConfig) (NacosClient, error) {
	serverConfigs := []constant.ServerConfig{
		{
			IpAddr: config.IpAddr,
			Port:   config.Port,
		},
	}
	cc := clientConfig(config)

	configClient, err := clients.NewConfigClient(
		vo.NacosClientParam{
			ClientConfig:  &cc,
			ServerConfigs: serverConfigs,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("create config client error: %w", err)
	}

	return &nacosClientImpl{configClient: configClient}, nil
}
