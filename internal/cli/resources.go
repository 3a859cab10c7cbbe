package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alnah/go-dictation/internal/config"
	"github.com/alnah/go-dictation/internal/fragment"
)

// loadPolicy resolves the segmentation policy: the flag path wins over the
// policy-file setting, and neither means defaults.
func loadPolicy(env *Env, cfg config.Config, flagPath string) (fragment.Policy, error) {
	path := flagPath
	if path == "" {
		path = cfg.PolicyFile
	}
	p, err := env.PolicyLoader.LoadPolicy(path)
	if err != nil {
		return fragment.Policy{}, err
	}
	if path != "" {
		env.Logger.Debug("loaded policy", "path", path, "ceiling", p.Ceiling, "floor", p.Floor)
	}
	return p, nil
}

// openStore opens the exercise database named by the configuration,
// creating its directory if needed.
func openStore(ctx context.Context, env *Env, cfg config.Config) (Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db-path is not set: %w", ErrInvalidArgs)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0750); err != nil { // #nosec G301 -- user data dir
		return nil, fmt.Errorf("cannot create database directory: %w", err)
	}
	env.Logger.Debug("opening store", "path", cfg.DBPath)
	return env.StoreOpener.Open(ctx, cfg.DBPath)
}

// withStore loads configuration, opens the store, runs fn and closes the store.
func withStore(ctx context.Context, env *Env, fn func(Store) error) error {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		return err
	}
	st, err := openStore(ctx, env, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			env.Logger.Warn("closing store", "error", cerr)
		}
	}()
	return fn(st)
}
