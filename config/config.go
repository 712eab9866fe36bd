// Package config loads the server configuration from a YAML file with
// environment overrides, then validates it.
package config

import (
	"fmt"
	"os"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/fbrnila/go-dms-dav/domain"
)

// Default returns the configuration used when no file or environment
// override says otherwise.
func Default() domain.ServerConfig {
	return domain.ServerConfig{
		Listen:                ":8081",
		ContentDir:            "data/content",
		BoltPath:              "data/dms.db",
		Naming:                domain.NameByDocument,
		WorkflowMode:          domain.WorkflowTraditional,
		DefaultDocPosition:    domain.DocPositionEnd,
		InitialDocumentStatus: domain.StatusReleased,
		CookieAge:             24,
	}
}

// Load builds the effective configuration: defaults, overridden by the
// YAML file at path when it exists, overridden by environment variables.
func Load(path string) (domain.ServerConfig, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *domain.ServerConfig) {
	setString(&cfg.Listen, "DMSDAV_LISTEN")
	setString(&cfg.ContentDir, "DMSDAV_CONTENT_DIR")
	setString(&cfg.BoltPath, "DMSDAV_BOLT_PATH")
	if v := os.Getenv("DMSDAV_NAMING"); v != "" {
		cfg.Naming = domain.NamingMode(v)
	}
	if v := os.Getenv("DMSDAV_WORKFLOW_MODE"); v != "" {
		cfg.WorkflowMode = domain.WorkflowMode(v)
	}
	setBool(&cfg.EnableReplaceDoc, "DMSDAV_ENABLE_REPLACE_DOC")
	setBool(&cfg.EnableDuplicateDocNames, "DMSDAV_ENABLE_DUPLICATE_DOC_NAMES")
	setBool(&cfg.EnableDuplicateSubfolderNames, "DMSDAV_ENABLE_DUPLICATE_SUBFOLDER_NAMES")
	setBool(&cfg.Debug, "DMSDAV_DEBUG")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			*dst = b
		}
	}
}

// Validate rejects configurations the server cannot run with.
func Validate(cfg domain.ServerConfig) error {
	return validation.ValidateStruct(&cfg,
		validation.Field(&cfg.Listen, validation.Required),
		validation.Field(&cfg.ContentDir, validation.Required),
		validation.Field(&cfg.Naming, validation.Required, validation.In(
			domain.NameByDocument, domain.NameByOriginalFilename, domain.NameByPrefixedFilename)),
		validation.Field(&cfg.WorkflowMode, validation.Required, validation.In(
			domain.WorkflowTraditional, domain.WorkflowTraditionalApproval, domain.WorkflowAdvanced)),
		validation.Field(&cfg.DefaultDocPosition, validation.Required, validation.In(
			domain.DocPositionStart, domain.DocPositionEnd)),
		validation.Field(&cfg.CookieAge, validation.Min(int64(1))),
	)
}
