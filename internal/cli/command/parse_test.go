package command

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParse_JSON(t *testing.T) {
	app, stdout, _ := testApp("")
	err := app.Run([]string{"telemetry-cli", "parse", "start_measurement(node_id=21,sequence=42)"})
	if code := exitCode(t, err); code != 0 {
		t.Fatalf("exit code = %d", code)
	}

	var doc map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, stdout.String())
	}
	if doc["command"] != "start_measurement" {
		t.Errorf("command = %v", doc["command"])
	}
	params, ok := doc["parameters"].(map[string]any)
	if !ok {
		t.Fatalf("parameters = %#v", doc["parameters"])
	}
	if params["node id"] != float64(21) || params["sequence"] != float64(42) {
		t.Errorf("parameters = %v", params)
	}
}

func TestParse_UnquotedArguments(t *testing.T) {
	app, stdout, _ := testApp("")
	err := app.Run([]string{"telemetry-cli", "parse", "set_log_filter(log_filter=radio", "mesh)"})
	if code := exitCode(t, err); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), `"log_filter": "radio mesh"`) {
		t.Errorf("stdout = %s", stdout.String())
	}
}

func TestParse_Formats(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{"yaml", []string{"command: update_node", "node id: 7"}},
		{"table", []string{"PARAMETER", "command", "update_node", "node id"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			app, stdout, _ := testApp("")
			err := app.Run([]string{"telemetry-cli", "-o", tt.format, "parse", "update_node(node_id=7)"})
			if code := exitCode(t, err); code != 0 {
				t.Fatalf("exit code = %d", code)
			}
			for _, want := range tt.want {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("output missing %q:\n%s", want, stdout.String())
				}
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{"no invocation", []string{"parse"}, ""},
		{"bad format", []string{"-o", "xml", "parse", "update_node"}, ""},
		{"quit", []string{"parse", "exit"}, "cannot be sent to the hub"},
		{"invalid field", []string{"parse", "update_node(node_id=-1)"}, "node_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, stdout, stderr := testApp("")
			err := app.Run(append([]string{"telemetry-cli"}, tt.args...))

			if code := exitCode(t, err); code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if stdout.Len() != 0 {
				t.Errorf("stdout = %q, want empty", stdout.String())
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	app, stdout, _ := testApp("")
	err := app.Run([]string{"telemetry-cli", "version"})
	if code := exitCode(t, err); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), `"go_version"`) {
		t.Errorf("stdout = %s", stdout.String())
	}
}
