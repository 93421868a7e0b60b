package config

import (
	"flag"
	"os"
	"strconv"
)

// CommandLineArgs 存儲從命令行解析的參數
type CommandLineArgs struct {
	ConfigFile  string
	ServerPort  int
	LogLevel    string
	HistoryFile string
	EnableFetch bool
	EnableNacos bool

	// 是否已處理命令行參數
	parsed bool
}

// 全局變量，用於存儲解析後的命令行參數
var Args CommandLineArgs

// InitFlags 初始化並解析命令行參數，結果寫回環境變量供 LoadConfig 使用
func InitFlags() {
	if Args.parsed {
		return
	}

	registerFlags(flag.CommandLine)
	flag.Parse()

	setEnvironmentVariables()
	Args.parsed = true
}

// registerFlags 註冊命令行參數，默認值取自環境變量
func registerFlags(fs *flag.FlagSet) {
	fs.StringVar(&Args.ConfigFile, "config", getEnv("CONFIG_FILE", ""), "YAML config file")
	fs.IntVar(&Args.ServerPort, "port", getEnvAsInt("SERVER_PORT", 8080), "HTTP server port")
	fs.StringVar(&Args.LogLevel, "log_level", getEnv("LOG_LEVEL", "info"), "Log level")
	fs.StringVar(&Args.HistoryFile, "history_file", getEnv("HISTORY_FILE", "1st_lotto_bonus.xlsx"), "History spreadsheet (.xlsx or .csv)")
	fs.BoolVar(&Args.EnableFetch, "enable_fetch", getEnvAsBool("FETCH_ENABLED", false), "Enable live draw fetching")
	fs.BoolVar(&Args.EnableNacos, "enable_nacos", getEnvAsBool("ENABLE_NACOS", false), "Enable Nacos configuration")
}

// setEnvironmentVariables 將解析後的命令行參數設置到環境變量中
func setEnvironmentVariables() {
	if Args.ConfigFile != "" {
		os.Setenv("CONFIG_FILE", Args.ConfigFile)
	}
	os.Setenv("SERVER_PORT", strconv.Itoa(Args.ServerPort))
	os.Setenv("LOG_LEVEL", Args.LogLevel)
	os.Setenv("HISTORY_FILE", Args.HistoryFile)
	os.Setenv("FETCH_ENABLED", strconv.FormatBool(Args.EnableFetch))
	os.Setenv("ENABLE_NACOS", strconv.FormatBool(Args.EnableNacos))
}
