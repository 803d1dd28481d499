package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeIDs()
	c.normalizeAssign()
	c.normalizeRecords()
	if err := c.normalizeJournal(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeIDs() {
	if c.IDs.Namespace == "" {
		if value, ok := os.LookupEnv(namespaceEnv); ok {
			c.IDs.Namespace = value
		}
	}
	c.IDs.Normalize = strings.ToLower(strings.TrimSpace(c.IDs.Normalize))
	if c.IDs.Normalize == "" {
		c.IDs.Normalize = "none"
	}
	if c.IDs.Bytes == 0 {
		c.IDs.Bytes = defaultBytes
	}
}

func (c *Config) normalizeAssign() {
	c.Assign.Policy = strings.ToLower(strings.TrimSpace(c.Assign.Policy))
	switch c.Assign.Policy {
	case "":
		c.Assign.Policy = defaultPolicy
	case "auto", "auto_resolve":
		c.Assign.Policy = "auto-resolve"
	}
	c.Assign.Verify = strings.ToLower(strings.TrimSpace(c.Assign.Verify))
	if c.Assign.Verify == "" {
		c.Assign.Verify = defaultVerify
	}
}

func (c *Config) normalizeRecords() {
	c.Records.NameField = strings.TrimSpace(c.Records.NameField)
	if c.Records.NameField == "" {
		c.Records.NameField = defaultNameField
	}
	c.Records.IDField = strings.TrimSpace(c.Records.IDField)
	if c.Records.IDField == "" {
		c.Records.IDField = defaultIDField
	}
	c.Records.LabelField = strings.TrimSpace(c.Records.LabelField)
	if c.Records.LabelField == "" {
		c.Records.LabelField = defaultLabelField
	}
	if c.Output.BackupSuffix == "" {
		c.Output.BackupSuffix = defaultBackupSuffix
	}
}

func (c *Config) normalizeJournal() error {
	if strings.TrimSpace(c.Journal.Path) == "" {
		c.Journal.Path = defaultJournalPath
	}
	var err error
	if c.Journal.Path, err = expandPath(c.Journal.Path); err != nil {
		return fmt.Errorf("journal.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = ""
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
