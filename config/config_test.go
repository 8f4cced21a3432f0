package config

import (
	"testing"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Auth:   AuthConfig{JWTSecret: "test-secret-key-for-unit-testing"},
		Upload: UploadConfig{
			Dir:         "static/uploads",
			AllowedExts: []string{"png", "jpg", "jpeg", "gif"},
		},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GC_AUTH_JWT_SECRET", "test-secret-key-for-unit-testing")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("期望默认端口 8080，实际=%d", cfg.Server.Port)
	}
	if cfg.Database.Name != "gestion_cours" {
		t.Errorf("期望默认数据库名 gestion_cours，实际=%s", cfg.Database.Name)
	}
	if len(cfg.Upload.AllowedExts) != 4 {
		t.Errorf("期望默认扩展名白名单 4 项，实际=%d", len(cfg.Upload.AllowedExts))
	}
	if cfg.Upload.Dir != "static/uploads" {
		t.Errorf("期望默认上传目录 static/uploads，实际=%s", cfg.Upload.Dir)
	}
}

func TestValidate_MissingJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = ""

	if err := cfg.Validate(); err == nil {
		t.Error("缺少 jwt_secret 时 Validate 应失败")
	}
}

func TestValidate_ShortJWTSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = "short"

	if err := cfg.Validate(); err == nil {
		t.Error("jwt_secret 过短时 Validate 应失败")
	}
}

func TestValidate_BadPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Error("端口为 0 时 Validate 应失败")
	}
}

func TestValidate_EmptyUploadDir(t *testing.T) {
	cfg := validConfig()
	cfg.Upload.Dir = ""

	if err := cfg.Validate(); err == nil {
		t.Error("上传目录为空时 Validate 应失败")
	}
}

func TestUploadConfig_AllowedExt(t *testing.T) {
	u := UploadConfig{AllowedExts: []string{"png", "jpg", "jpeg", "gif"}}

	cases := []struct {
		ext  string
		want bool
	}{
		{"png", true},
		{"JPG", true},
		{"jpeg", true},
		{"gif", true},
		{"exe", false},
		{"", false},
		{"svg", false},
	}

	for _, tc := range cases {
		if got := u.AllowedExt(tc.ext); got != tc.want {
			t.Errorf("AllowedExt(%q) 期望 %v，实际 %v", tc.ext, tc.want, got)
		}
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres", Password: "pw",
		Name: "gestion_cours", SSLMode: "disable", Timezone: "Europe/Paris",
	}

	dsn := c.DSN()
	want := "host=localhost port=5432 user=postgres password=pw dbname=gestion_cours sslmode=disable TimeZone=Europe/Paris"
	if dsn != want {
		t.Errorf("DSN 不符\n期望: %s\n实际: %s", want, dsn)
	}
}
