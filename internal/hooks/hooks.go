package hooks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/listr/internal/logger"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the hooks configuration file.
const ConfigFileName = ".listr.hooks.yml"

// LoadConfig reads ConfigFileName from workDir. A missing file yields a nil
// config and no error.
func LoadConfig(workDir string) (*Config, error) {
	path := filepath.Join(workDir, ConfigFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read hooks config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse hooks config %s: %w", path, err)
	}
	if cfg.Version > 1 {
		return nil, fmt.Errorf("unsupported hooks config version %d", cfg.Version)
	}
	logger.Debug("Loaded %d on_submit hook(s) from %s", len(cfg.Hooks.OnSubmit), path)
	return cfg, nil
}

// Variables holds template variables that can be expanded in hook commands.
type Variables struct {
	Listing string
	Status  string
	Name    string
}

// Env returns vars as LISTR_* environment entries for hook processes.
func (v Variables) Env() []string {
	return []string{
		"LISTR_LISTING_ID=" + v.Listing,
		"LISTR_LISTING_STATUS=" + v.Status,
		"LISTR_LISTING_NAME=" + v.Name,
	}
}

// Execute runs one hook through sh and returns its output. {{listing}},
// {{status}} and {{name}} are expanded in the command, and the same values
// are exported as LISTR_* variables.
//
// A failing or timed out command is reported in the returned output with a
// nil error. Only cancellation of ctx is returned as an error.
func Execute(ctx context.Context, hook *HookConfig, workDir string, vars Variables) (string, error) {
	if hook == nil || hook.Command == "" {
		return "", nil
	}

	command := expandVariables(hook.Command, vars)
	timeout := hook.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger.Debug("Executing hook (timeout %ds): %s", timeout, command)

	execCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(execCtx, "sh", "-c", command)
	cmd.Dir = workDir
	cmd.Env = append(os.Environ(), vars.Env()...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()

	switch {
	case ctx.Err() != nil:
		return "", ctx.Err()
	case errors.Is(execCtx.Err(), context.DeadlineExceeded):
		logger.Warn("Hook timed out after %ds: %s", timeout, command)
		return fmt.Sprintf("[Hook timed out after %ds]\nPartial output:\n%s", timeout, stdout.String()), nil
	case runErr != nil:
		logger.Warn("Hook failed: %v", runErr)
		return fmt.Sprintf("[Hook command failed: %v]\n%s", runErr, withStderr(stdout.String(), stderr.String())), nil
	}

	output := withStderr(stdout.String(), stderr.String())
	logger.Debug("Hook finished, %d bytes of output", len(output))
	return output, nil
}

func withStderr(stdout, stderr string) string {
	if stderr == "" {
		return stdout
	}
	return stdout + "\n[stderr]\n" + stderr
}

// expandVariables replaces {{variable}} placeholders in the command string.
func expandVariables(command string, vars Variables) string {
	replacements := map[string]string{
		"{{listing}}": vars.Listing,
		"{{status}}":  vars.Status,
		"{{name}}":    shellQuote(vars.Name),
	}

	result := command
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}
	return result
}

// shellQuote wraps s in single quotes for sh. Listing names are user input.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ExecuteAll runs hooks in order and joins their non-empty outputs with a
// newline. It stops only when ctx is cancelled.
func ExecuteAll(ctx context.Context, hooks []*HookConfig, workDir string, vars Variables) (string, error) {
	var outputs []string
	for _, hook := range hooks {
		output, err := Execute(ctx, hook, workDir, vars)
		if err != nil {
			return "", err
		}
		if output != "" {
			outputs = append(outputs, output)
		}
	}
	return strings.Join(outputs, "\n"), nil
}

// RunOnSubmit loads the hooks config from workDir and runs its on_submit
// hooks. A missing config is not an error.
func RunOnSubmit(ctx context.Context, workDir string, vars Variables) (string, error) {
	cfg, err := LoadConfig(workDir)
	if err != nil || cfg == nil {
		return "", err
	}
	logger.Info("Running %d on_submit hook(s) for listing %s", len(cfg.Hooks.OnSubmit), vars.Listing)
	return ExecuteAll(ctx, cfg.Hooks.OnSubmit, workDir, vars)
}
