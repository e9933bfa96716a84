package compileinfo

import (
	"bytes"
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	c := CompileInfo{Package: "github.com/carbocation/plink/cmd/plinkinfo", GoVersion: "go1.18", Commit: "abc123", Modified: true}

	s := c.String()
	if !strings.Contains(s, "plinkinfo") || !strings.Contains(s, "abc123") || !strings.Contains(s, "modified") {
		t.Errorf("Got %q", s)
	}

	if (CompileInfo{}).String() == "" {
		t.Error("Empty CompileInfo should still describe itself")
	}
}

func TestFprint(t *testing.T) {
	var buf bytes.Buffer
	Fprint(&buf)

	if !strings.HasSuffix(buf.String(), "\n") {
		t.Errorf("Got %q", buf.String())
	}
}
