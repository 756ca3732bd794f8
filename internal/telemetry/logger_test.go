package telemetry

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func TestInvocationHook_Fire(t *testing.T) {
	hook := NewInvocationHook()
	if _, err := uuid.Parse(hook.ID()); err != nil {
		t.Fatalf("ID() is not a uuid: %v", err)
	}

	entry := logrus.NewEntry(logrus.New())
	entry.Data = logrus.Fields{}
	if err := hook.Fire(entry); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}
	if entry.Data["invocation_id"] != hook.ID() {
		t.Errorf("invocation_id = %v, want %s", entry.Data["invocation_id"], hook.ID())
	}

	// 已有的字段不被覆盖
	entry.Data["invocation_id"] = "preset"
	_ = hook.Fire(entry)
	if entry.Data["invocation_id"] != "preset" {
		t.Errorf("invocation_id overwritten: %v", entry.Data["invocation_id"])
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Options{Verbose: true, Format: "json"})

	logger.WithField("command", "audit:ping").Debug("dispatching command")

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if got["msg"] != "dispatching command" || got["command"] != "audit:ping" {
		t.Errorf("unexpected entry: %v", got)
	}
	if _, ok := got["invocation_id"]; !ok {
		t.Error("invocation_id missing")
	}
}

func TestNewLogger_QuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, Options{})

	logger.Debug("hidden")
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}

	logger.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn should be written, got %q", buf.String())
	}
}
