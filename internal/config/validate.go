package config

import (
	"errors"
	"fmt"

	"ufid/internal/ufid"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateIDs(); err != nil {
		return err
	}
	if err := c.validateAssign(); err != nil {
		return err
	}
	if err := c.validateRecords(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateIDs() error {
	if _, err := ufid.ParseForm(c.IDs.Normalize); err != nil {
		return fmt.Errorf("ids.normalize: %w", err)
	}
	if !ufid.Length(c.IDs.Bytes).Valid() {
		return fmt.Errorf("ids.bytes must be 4, 8, or 16 (got %d)", c.IDs.Bytes)
	}
	return nil
}

func (c *Config) validateAssign() error {
	switch c.Assign.Policy {
	case "strict", "auto-resolve":
	default:
		return fmt.Errorf("assign.policy must be strict or auto-resolve (got %q)", c.Assign.Policy)
	}
	switch c.Assign.Verify {
	case "off", "warn", "fail":
	default:
		return fmt.Errorf("assign.verify must be off, warn, or fail (got %q)", c.Assign.Verify)
	}
	if c.Assign.Workers < 0 {
		return errors.New("assign.workers must not be negative")
	}
	return nil
}

func (c *Config) validateRecords() error {
	fields := map[string]string{
		"records.name_field":  c.Records.NameField,
		"records.id_field":    c.Records.IDField,
		"records.label_field": c.Records.LabelField,
	}
	seen := make(map[string]string, len(fields))
	for _, key := range []string{"records.name_field", "records.id_field", "records.label_field"} {
		value := fields[key]
		if other, ok := seen[value]; ok {
			return fmt.Errorf("%s and %s must name different fields (both %q)", other, key, value)
		}
		seen[value] = key
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json (got %q)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error (got %q)", c.Logging.Level)
	}
	return nil
}
