package cli

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
)

func TestResolveVersionInfo_LdflagsOverride(t *testing.T) {
	original := version
	defer func() { version = original }()

	version = "1.2.3"
	v, _, _ := resolveVersionInfo()
	if v != "1.2.3" {
		t.Errorf("expected ldflags version '1.2.3', got %q", v)
	}
}

func TestResolveVersionInfo_DevFallback(t *testing.T) {
	origV, origC, origD := version, commit, date
	defer func() { version, commit, date = origV, origC, origD }()

	version, commit, date = "dev", "unknown", "unknown"
	v, c, d := resolveVersionInfo()

	if v == "" {
		t.Error("version should not be empty")
	}
	// In a test binary, ReadBuildInfo returns test module info.
	t.Logf("resolved: version=%s commit=%s date=%s", v, c, d)
}

func TestPrintVersionInfo_SplitsStreams(t *testing.T) {
	origV := version
	defer func() { version = origV }()
	version = "1.2.3"

	var out, errOut bytes.Buffer
	printVersionInfo(&out, &errOut)

	line := out.String()
	if !strings.HasPrefix(line, "levelpack 1.2.3 (") {
		t.Errorf("unexpected version line %q", line)
	}
	if !strings.Contains(line, runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("version line should name the platform: %q", line)
	}
	if strings.Count(line, "\n") != 1 {
		t.Errorf("stdout should hold exactly one line, got %q", line)
	}
	if !strings.Contains(errOut.String(), "Game level packager") {
		t.Errorf("decorative output missing from stderr: %q", errOut.String())
	}
}
