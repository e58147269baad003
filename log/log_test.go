package log

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/citadel-chain/citadeld/conf"
)

func TestInitLoggerAndPrint(t *testing.T) {
	dir, err := ioutil.TempDir("", "log-test")
	if err != nil {
		t.Fatalf("TempDir: %v", err)
	}
	defer os.RemoveAll(dir)

	if err := InitLogger(dir, "debug"); err != nil {
		t.Fatalf("InitLogger: %v", err)
	}

	conf.AppConf = &conf.Configuration{LogModule: []string{"utxo"}}
	Print("utxo", "info", "cache flushed %d entries", 3)
	if !IsIncludeModule("utxo") {
		t.Error("utxo should be an included module")
	}
	if IsIncludeModule("rpc") {
		t.Error("rpc should not be an included module")
	}
}

func TestGetLevelFallback(t *testing.T) {
	if GetLevel("nonsense") != defaultLogLevel {
		t.Error("unrecognized level name should fall back to the default")
	}
}
