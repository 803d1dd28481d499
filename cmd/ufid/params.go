package main

import (
	"fmt"
	"log/slog"

	"ufid/internal/assign"
	"ufid/internal/config"
	"ufid/internal/records"
	"ufid/internal/ufid"
)

func idParams(cfg *config.Config) (ufid.Params, error) {
	form, err := ufid.ParseForm(cfg.IDs.Normalize)
	if err != nil {
		return ufid.Params{}, err
	}
	length := ufid.Length(cfg.IDs.Bytes)
	if !length.Valid() {
		return ufid.Params{}, fmt.Errorf("unsupported id length %d bytes", cfg.IDs.Bytes)
	}
	return ufid.Params{
		Namespace: cfg.IDs.Namespace,
		Normalization: ufid.Normalization{
			Form:     form,
			CaseFold: cfg.IDs.CaseFold,
			Trim:     cfg.IDs.Strip,
		},
		Length: length,
	}, nil
}

func assignOptions(cfg *config.Config, logger *slog.Logger) (assign.Options, error) {
	params, err := idParams(cfg)
	if err != nil {
		return assign.Options{}, err
	}
	policy, err := assign.ParsePolicy(cfg.Assign.Policy)
	if err != nil {
		return assign.Options{}, err
	}
	verify, err := assign.ParseVerifyMode(cfg.Assign.Verify)
	if err != nil {
		return assign.Options{}, err
	}
	return assign.Options{
		Params:  params,
		Policy:  policy,
		Force:   cfg.Assign.Force,
		Verify:  verify,
		Workers: cfg.Assign.Workers,
		Logger:  logger,
	}, nil
}

func recordSchema(cfg *config.Config) records.Schema {
	return records.Schema{
		NameField:  cfg.Records.NameField,
		IDField:    cfg.Records.IDField,
		LabelField: cfg.Records.LabelField,
	}
}

// modeSummary renders the parameter line printed after every assignment.
func modeSummary(cfg *config.Config) string {
	mode := "STRICT"
	if cfg.Assign.Policy == string(assign.PolicyAutoResolve) {
		mode = "AUTO-RESOLVE"
	}
	force := "NO-FORCE"
	if cfg.Assign.Force {
		force = "FORCE"
	}
	namespace := cfg.IDs.Namespace
	if namespace == "" {
		namespace = "(none)"
	}
	return fmt.Sprintf("Mode: %s; %s; Namespace: %s; Bytes: %d; Normalize: %s; Casefold: %s; Strip: %s; Verify: %s",
		mode, force, namespace, cfg.IDs.Bytes, cfg.IDs.Normalize,
		pyBool(cfg.IDs.CaseFold), pyBool(cfg.IDs.Strip), cfg.Assign.Verify)
}
