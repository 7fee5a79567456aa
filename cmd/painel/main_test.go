package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/painel/internal/core"
	"github.com/JonMunkholm/painel/internal/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	path := testutil.WriteWorkbook(t, testutil.SampleRows())

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--dataset", path}, args...))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestOptionsCmd(t *testing.T) {
	out, err := run(t, "-o", "json", "options", "--block", "By Region")
	if err != nil {
		t.Fatalf("options error = %v\n%s", err, out)
	}

	var opts core.Options
	if err := json.Unmarshal([]byte(out), &opts); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if strings.Join(opts.Categories, ",") != "ALL,North,South" {
		t.Errorf("Categories = %v", opts.Categories)
	}
}

func TestOptionsCmd_YAML(t *testing.T) {
	out, err := run(t, "options")
	if err != nil {
		t.Fatalf("options error = %v\n%s", err, out)
	}
	for _, want := range []string{"block: By Education Stage", "- ALL", "key: library"} {
		if !strings.Contains(out, want) {
			t.Errorf("yaml output missing %q:\n%s", want, out)
		}
	}
}

func TestViewCmd(t *testing.T) {
	out, err := run(t, "-o", "json", "view", "--block", "By Region", "--year", "2022", "--mode", "staff")
	if err != nil {
		t.Fatalf("view error = %v\n%s", err, out)
	}

	var v viewSummary
	if err := json.Unmarshal([]byte(out), &v); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if v.Rows != 2 || v.Mode.Key != "staff" || len(v.Charts) != 2 {
		t.Errorf("view = %+v", v)
	}
}

func TestExportCmd(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.xlsx")
	out, err := run(t, "-o", "json", "export", "--block", "By Region", "--out", dest)
	if err != nil {
		t.Fatalf("export error = %v\n%s", err, out)
	}

	info, err := os.Stat(dest)
	if err != nil {
		t.Fatalf("export file not written: %v", err)
	}

	var res fileResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if res.File != dest || int64(res.Bytes) != info.Size() {
		t.Errorf("result = %+v, file size %d", res, info.Size())
	}
}

func TestChartCmd(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "c.png")
	if out, err := run(t, "chart", "1", "--out", dest); err != nil {
		t.Fatalf("chart error = %v\n%s", err, out)
	}

	img, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	if !bytes.HasPrefix(img, []byte("\x89PNG")) {
		t.Error("chart file is not a PNG")
	}

	if _, err := run(t, "chart", "3", "--out", dest); err == nil {
		t.Error("chart 3 should fail")
	}
}

func TestRootCmd_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad output format", args: []string{"-o", "xml", "options"}},
		{name: "unknown block", args: []string{"options", "--block", "By Planet"}},
		{name: "missing dataset", args: []string{"--dataset", "/nonexistent/x.xlsx", "options"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
