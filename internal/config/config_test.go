package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Вспомогательные хелперы.
func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

// Полный корректный YAML с заданными значениями (не зависящими от дефолтов).
const sampleYAML = `
env: "prod"
api:
  base_url: "https://api.syriacar.example"
  timeout: "5s"
session:
  path: "/var/lib/syriacar/session.json"
list:
  default_page_size: 6
  max_page_size: 50
`

// Минимально валидный YAML (только обязательные поля).
const minimalYAML = `
api:
  base_url: "http://localhost:8000"
`

// Некорректный YAML — для проверки ошибок парсинга.
const brokenYAML = `
api:
  base_url: [unclosed
`

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "https://api.syriacar.example", cfg.API.BaseURL)
	require.Equal(t, 5*time.Second, cfg.API.Timeout)
	require.Equal(t, "/var/lib/syriacar/session.json", cfg.Session.Path)
	require.Equal(t, 6, cfg.List.DefaultPageSize)
	require.Equal(t, 50, cfg.List.MaxPageSize)
}

func TestLoad_Minimal_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", minimalYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "local", cfg.Env)
	require.Equal(t, 15*time.Second, cfg.API.Timeout)
	require.Equal(t, ".syriacar/session.json", cfg.Session.Path)
	require.Equal(t, 10, cfg.List.DefaultPageSize)
	require.Equal(t, 100, cfg.List.MaxPageSize)
}

func TestLoad_BrokenYAML_Error(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
}

func TestLoad_MissingFile_Error(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

// ENV накладывается поверх значений из файла.
func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	t.Setenv("API_BASE_URL", "https://staging.syriacar.example")
	t.Setenv("LIST_DEFAULT_PAGE_SIZE", "25")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "https://staging.syriacar.example", cfg.API.BaseURL)
	require.Equal(t, 25, cfg.List.DefaultPageSize)
}

// Путь из CONFIG_PATH используется, когда явный не передан.
func TestLoad_ConfigPathEnv(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "from-env.yaml", sampleYAML)

	t.Setenv("CONFIG_PATH", cfgPath)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "https://api.syriacar.example", cfg.API.BaseURL)
}

// Без файлов вообще: обязательное поле приходит из ENV.
func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://127.0.0.1:9000")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:9000", cfg.API.BaseURL)
	require.Equal(t, 15*time.Second, cfg.API.Timeout)
}

// Размер страницы из конфига никогда не выходит за MaxPageSize
// (например, LIST_DEFAULT_PAGE_SIZE=10000 из окружения).
func TestListConfig_PageSize(t *testing.T) {
	cases := []struct {
		name string
		cfg  ListConfig
		want int
	}{
		{"default_within_max", ListConfig{DefaultPageSize: 10, MaxPageSize: 100}, 10},
		{"default_above_max", ListConfig{DefaultPageSize: 10000, MaxPageSize: 50}, 50},
		{"zero_default", ListConfig{DefaultPageSize: 0, MaxPageSize: 50}, 1},
		{"negative_default", ListConfig{DefaultPageSize: -3, MaxPageSize: 50}, 1},
		{"no_max_configured", ListConfig{DefaultPageSize: 25}, 25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.cfg.PageSize())
		})
	}
}

func TestMustLoad_PanicsOnError(t *testing.T) {
	require.Panics(t, func() {
		MustLoad(filepath.Join(t.TempDir(), "absent.yaml"))
	})
}
