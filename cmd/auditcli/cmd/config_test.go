package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oriys/auditcli/internal/config"
)

func TestConfigView(t *testing.T) {
	env := newTestEnv(t, "log_level: warn\n")

	code, stdout, stderr := run("--config="+env.cfgPath, "config", "view")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stdout, "Configuration file: "+env.cfgPath) {
		t.Errorf("stdout = %q", stdout)
	}
	for _, want := range []string{"log_level: warn", "log_channel: file", "strict: true", "log_file: " + env.logPath} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q: %q", want, stdout)
		}
	}
}

func TestConfigView_JSON(t *testing.T) {
	env := newTestEnv(t, "")

	code, stdout, stderr := run("--config="+env.cfgPath, "config", "view", "-o", "json")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}

	var got map[string]interface{}
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, stdout)
	}
	if got["log_channel"] != "file" || got["strict"] != true {
		t.Errorf("unexpected settings: %v", got)
	}
}

func TestConfigView_UnknownFormat(t *testing.T) {
	env := newTestEnv(t, "")

	code, _, stderr := run("--config="+env.cfgPath, "config", "view", "--output=table")
	if code != 1 || !strings.Contains(stderr, "ERROR: Unknown output format: table") {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "config.yaml")

	// 配置文件尚不存在，config init 不依赖已有配置
	code, stdout, stderr := run("--config="+path, "config", "init")
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr)
	}
	if !strings.Contains(stdout, "Configuration file created at "+path) {
		t.Errorf("stdout = %q", stdout)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.LogChannel != "file" || cfg.LogFile != filepath.Join(filepath.Dir(path), "audit.log") {
		t.Errorf("unexpected generated config: %+v", cfg)
	}

	// 第二次执行拒绝覆盖
	code, _, stderr = run("--config="+path, "config", "init")
	if code != 1 || !strings.Contains(stderr, "ERROR: configuration file already exists at "+path) {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
}

func TestConfigUnknownSubcommand(t *testing.T) {
	env := newTestEnv(t, "")

	code, _, stderr := run("--config="+env.cfgPath, "config", "set")
	if code != 1 || !strings.Contains(stderr, "ERROR: Unknown command: config set") {
		t.Errorf("code = %d, stderr = %q", code, stderr)
	}
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t, "version: 3.1.4\n")

	code, stdout, _ := run("--config="+env.cfgPath, "version")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, "auditcli version dev") || !strings.Contains(stdout, "AuditCLI v3.1.4") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestPrintError_NonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stderr")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	printError(f, "boom")

	data, err := os.ReadFile(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "ERROR: boom\n" {
		t.Errorf("output = %q, regular files must not get color codes", data)
	}
}
