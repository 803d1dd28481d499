package config

const (
	defaultConfigPath   = "~/.config/ufid/config.toml"
	projectConfigName   = "ufid.toml"
	defaultBytes        = 4
	defaultNormalize    = "nfkc"
	defaultPolicy       = "strict"
	defaultVerify       = "warn"
	defaultNameField    = "file"
	defaultIDField      = "id"
	defaultLabelField   = "title"
	defaultBackupSuffix = "-old"
	defaultJournalPath  = "~/.local/share/ufid/journal.db"
	defaultLogFormat    = "console"
	defaultLogLevel     = "warn"

	namespaceEnv = "UFID_NAMESPACE"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		IDs: IDs{
			Bytes:     defaultBytes,
			Normalize: defaultNormalize,
			CaseFold:  true,
			Strip:     true,
		},
		Assign: Assign{
			Policy: defaultPolicy,
			Verify: defaultVerify,
		},
		Records: Records{
			NameField:  defaultNameField,
			IDField:    defaultIDField,
			LabelField: defaultLabelField,
		},
		Output: Output{
			BackupSuffix: defaultBackupSuffix,
		},
		Journal: Journal{
			Enabled: true,
			Path:    defaultJournalPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
