package log

import (
	"strings"

	"github.com/astaxie/beego/logs"
)

const defaultLogLevel = logs.LevelDebug

var levelMap = map[string]int{
	"emergency": logs.LevelEmergency,
	"alert":     logs.LevelAlert,
	"critical":  logs.LevelCritical,
	"error":     logs.LevelError,
	"warn":      logs.LevelWarn,
	"notice":    logs.LevelNotice,
	"info":      logs.LevelInfo,
	"debug":     logs.LevelDebug,
}

// GetLevel maps a config-file level name to beego's numeric log level,
// falling back to debug for anything unrecognized.
func GetLevel(level string) int {
	level = strings.ToLower(level)
	if lv, ok := levelMap[level]; ok {
		return lv
	}
	return defaultLogLevel
}
