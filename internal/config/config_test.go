package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate points XDG and the working directory at a fresh temp dir and
// clears any LISTR_* variables that would leak in from the environment.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "LISTR_") {
			key := strings.SplitN(env, "=", 2)[0]
			t.Setenv(key, "")
			_ = os.Unsetenv(key)
		}
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		if got := GlobalPath(); got != "/custom/config/listr/listr.yml" {
			t.Errorf("GlobalPath() = %v", got)
		}
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		got := GlobalPath()
		if !filepath.IsAbs(got) {
			t.Errorf("GlobalPath() should return absolute path, got %v", got)
		}
		if filepath.Base(got) != "listr.yml" {
			t.Errorf("GlobalPath() should end with listr.yml, got %v", got)
		}
	})
}

func TestProjectPath(t *testing.T) {
	if got := ProjectPath(); got != "listr.yml" {
		t.Errorf("ProjectPath() = %v, want listr.yml", got)
	}
}

func TestExists(t *testing.T) {
	isolate(t)

	if Exists() {
		t.Fatal("Exists() = true, want false when no config files exist")
	}

	if err := os.WriteFile(ProjectPath(), []byte("user_id: u1\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false, want true when project config exists")
	}
}

func TestLoad_NoConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataDir != ".listr" {
		t.Errorf("default DataDir = %v, want .listr", cfg.DataDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.Storage.Backend != BackendNATS {
		t.Errorf("default backend = %v, want nats", cfg.Storage.Backend)
	}
	if cfg.Storage.PlaceholderURL != DefaultPlaceholderURL {
		t.Errorf("default placeholder = %v", cfg.Storage.PlaceholderURL)
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	isolate(t)

	global := Default()
	global.UserID = "global-user"
	global.LogLevel = "warn"
	if err := WriteGlobal(global); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}

	project := Default()
	project.UserID = "project-user"
	project.LogLevel = "warn"
	if err := WriteProject(project); err != nil {
		t.Fatalf("WriteProject() error = %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UserID != "project-user" {
		t.Errorf("UserID = %v, want project-user", cfg.UserID)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn", cfg.LogLevel)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)

	project := Default()
	project.UserID = "file-user"
	if err := WriteProject(project); err != nil {
		t.Fatalf("WriteProject() error = %v", err)
	}

	t.Setenv("LISTR_USER_ID", "env-user")
	t.Setenv("LISTR_STORAGE_BASE_URL", "https://cdn.example.com/images")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UserID != "env-user" {
		t.Errorf("UserID = %v, want env-user", cfg.UserID)
	}
	if cfg.Storage.BaseURL != "https://cdn.example.com/images" {
		t.Errorf("BaseURL = %v", cfg.Storage.BaseURL)
	}
}

func TestLoad_CloudinaryRequiresCredentials(t *testing.T) {
	isolate(t)
	t.Setenv("LISTR_STORAGE_BACKEND", "cloudinary")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for cloudinary backend without credentials")
	}

	t.Setenv("LISTR_CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("LISTR_CLOUDINARY_API_KEY", "key")
	t.Setenv("LISTR_CLOUDINARY_API_SECRET", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cloudinary.CloudName != "demo" {
		t.Errorf("CloudName = %v, want demo", cfg.Cloudinary.CloudName)
	}
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "s3"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestWriteProject(t *testing.T) {
	isolate(t)

	cfg := Default()
	cfg.UserID = "owner-1"
	cfg.DataDir = ".project"

	if err := WriteProject(cfg); err != nil {
		t.Fatalf("WriteProject() error = %v", err)
	}

	data, err := os.ReadFile(ProjectPath())
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	content := string(data)
	for _, field := range []string{"user_id: owner-1", "data_dir: .project", "backend: nats"} {
		if !strings.Contains(content, field) {
			t.Errorf("Config file missing expected field: %s\nContent:\n%s", field, content)
		}
	}
}
