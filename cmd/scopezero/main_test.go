package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SCOPEZERO_HOME", dir)
	t.Setenv("SCOPEZERO_PROJECT_DIR", dir)

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{name: "version", args: []string{"--version"}, wantCode: 0, wantOut: "dev"},
		{name: "unknown command", args: []string{"bogus"}, wantCode: 1, wantErr: "Error: unknown command"},
		{name: "factors json", args: []string{"factors", "-o", "json"}, wantCode: 0, wantOut: `"Steel"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args, &stdout, &stderr)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantOut != "" {
				assert.Contains(t, stdout.String(), tt.wantOut)
			}
			if tt.wantErr != "" {
				assert.Contains(t, stderr.String(), tt.wantErr)
			}
		})
	}
}
