package utils

import (
	"fmt"
	"runtime"
)

// 構建信息，通過 ldflags 在編譯時注入
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitHash   = "unknown"
)

// BuildInfo 版本信息
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitHash   string `json:"git_hash"`
	GoVersion string `json:"go_version"`
}

// GetBuildInfo 返回目前的版本信息
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		GitHash:   GitHash,
		GoVersion: runtime.Version(),
	}
}

// VersionString 返回單行的版本描述
func VersionString() string {
	info := GetBuildInfo()
	return fmt.Sprintf("%s (commit %s, built %s, %s)", info.Version, info.GitHash, info.BuildTime, info.GoVersion)
}
