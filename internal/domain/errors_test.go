package domain

import (
	"errors"
	"io/fs"
	"testing"
)

// TestError_KindMatching 测试领域错误按种类匹配以及原因链的展开。
func TestError_KindMatching(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     error
		wantMsg  string
		wantKind string
	}{
		{
			name:     "argument error",
			err:      ArgumentError("Missing --user or --action"),
			kind:     ErrArgument,
			wantMsg:  "Missing --user or --action",
			wantKind: "argument",
		},
		{
			name:     "configuration error with cause",
			err:      ConfigurationError("Config not found: /x.yaml", fs.ErrNotExist),
			kind:     ErrConfiguration,
			wantMsg:  "Config not found: /x.yaml: file does not exist",
			wantKind: "configuration",
		},
		{
			name:     "io error",
			err:      IOError("append log", fs.ErrPermission),
			kind:     ErrIO,
			wantMsg:  "append log: permission denied",
			wantKind: "io",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.kind)
			}
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := KindOf(tt.err); got != tt.wantKind {
				t.Errorf("KindOf() = %q, want %q", got, tt.wantKind)
			}
		})
	}
}

func TestError_UnwrapCause(t *testing.T) {
	err := IOError("append log", fs.ErrPermission)
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("expected cause to be reachable through errors.Is")
	}
	if errors.Is(err, ErrArgument) {
		t.Error("io error must not match argument kind")
	}
}

func TestKindOf_Internal(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != "internal" {
		t.Errorf("KindOf() = %q, want internal", got)
	}
	if got := KindOf(nil); got != "" {
		t.Errorf("KindOf(nil) = %q, want empty", got)
	}
}
