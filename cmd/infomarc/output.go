package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// stdout is where command results go; tests swap it.
var stdout io.Writer = os.Stdout

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Fprintf(stdout, format, args...)
}

// outputError writes an error message to stderr and returns the exit code.
// Stdout may carry MARCXML, so errors never go there.
func outputError(code int, format string, args ...interface{}) int {
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
		return code
	}
	enc := json.NewEncoder(os.Stderr)
	_ = enc.Encode(ErrorResponse{Error: fmt.Sprintf(format, args...), Code: code})
	return code
}

// reportError prints err and returns the process exit code.
func reportError(err error) int {
	return outputError(exitCode(err), "%v", err)
}

// newLogger builds the stderr console logger; verbose lowers the level to
// debug.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
	return cfg.Build()
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// ExportResponse summarises an export run.
type ExportResponse struct {
	Output      string `json:"output"`
	Read        int    `json:"read"`
	Emitted     int    `json:"emitted"`
	Excluded    int    `json:"excluded"`
	ConfigFound bool   `json:"config_found"`
	LabKnown    bool   `json:"lab_known"`
}

// RegistryResponse describes loaded registries.
type RegistryResponse struct {
	Source    string `json:"source"`
	Labs      int    `json:"labs"`
	Authors   int    `json:"authors"`
	CachePath string `json:"cache_path,omitempty"`
	FetchedAt string `json:"fetched_at,omitempty"`
}

// LabResponse is one lab registry entry.
type LabResponse struct {
	Acronym string `json:"acronym"`
	RecID   string `json:"recid"`
	Manager string `json:"manager"`
	UID     string `json:"uid"`
	Liaison string `json:"liaison"`
	Authors int    `json:"authors"`
}
