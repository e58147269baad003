// Package log wraps beego's leveled logger with a package-level instance
// and a module allowlist, so call sites can write
// log.Print("utxo", "debug", "flushing %d entries", n) and, for the
// truly hot paths, defer message formatting to a LogClosure that's only
// invoked if the module passes the filter.
package log

import (
	"encoding/json"
	"fmt"
	"path"
	"runtime"

	"github.com/astaxie/beego/logs"

	"github.com/citadel-chain/citadeld/conf"
)

func init() {
	_ = InitLogger(conf.GetDataPath(), "info")
}

type logConfig struct {
	Filename string `json:"filename"`
	Level    int    `json:"level,omitempty"`
	Rotate   bool   `json:"rotate,omitempty"`
	Daily    bool   `json:"daily,omitempty"`
}

// TraceLog reports the function name and line of its caller, for ad-hoc
// debug traces.
func TraceLog() string {
	pc := make([]uintptr, 10)
	runtime.Callers(2, pc)
	f := runtime.FuncForPC(pc[0])
	_, line := f.FileLine(pc[0])
	return fmt.Sprintf("%s line : %d\n", f.Name(), line)
}

// InitLogger points the package logger at dir/debug.log, rotating daily,
// at the given level name (see GetLevel). A file logger set by an earlier
// call (including the one made at package init) is replaced.
func InitLogger(dir, strLevel string) error {
	cfg, err := json.Marshal(logConfig{
		Filename: path.Join(dir, "debug.log"),
		Rotate:   true,
		Daily:    true,
		Level:    GetLevel(strLevel),
	})
	if err != nil {
		return err
	}
	// beego refuses a second registration of the same adapter name.
	_ = logs.GetBeeLogger().DelLogger(logs.AdapterFile)
	return logs.SetLogger(logs.AdapterFile, string(cfg))
}

// IsIncludeModule reports whether module is enabled in conf.AppConf's
// module allowlist. An unconfigured allowlist (nil AppConf, as in tests)
// permits everything.
func IsIncludeModule(module string) bool {
	if conf.AppConf == nil {
		return true
	}
	for _, item := range conf.AppConf.LogModule {
		if item == module {
			return true
		}
	}
	return false
}

// Print logs format/reason at level if module passes IsIncludeModule.
func Print(module, level, format string, reason ...interface{}) {
	if !IsIncludeModule(module) {
		return
	}
	switch level {
	case "emergency":
		logs.Emergency(format, reason...)
	case "alert":
		logs.Alert(format, reason...)
	case "critical":
		logs.Critical(format, reason...)
	case "error":
		logs.Error(format, reason...)
	case "warn":
		logs.Warn(format, reason...)
	case "notice":
		logs.Notice(format, reason...)
	case "info":
		logs.Info(format, reason...)
	default:
		logs.Debug(format, reason...)
	}
}

// Debug evaluates c only if module passes the allowlist, so a filtered-out
// module never pays the format cost. The configured log level is not
// consulted: for an included module c is evaluated at any level.
func Debug(module string, c LogClosure) {
	if IsIncludeModule(module) {
		logs.Debug(c.ToString())
	}
}
