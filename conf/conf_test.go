package conf

import "testing"

func TestInitConfigDefaults(t *testing.T) {
	cfg, err := InitConfig("")
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if cfg.DBCacheMiB != 450 {
		t.Errorf("DBCacheMiB = %d, want 450", cfg.DBCacheMiB)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if GetDataPath() != cfg.DataDir {
		t.Errorf("GetDataPath() = %q, want %q", GetDataPath(), cfg.DataDir)
	}
}
