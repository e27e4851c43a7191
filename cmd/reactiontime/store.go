package main

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/daiboyi110/ReactionTime/internal/config"
	"github.com/daiboyi110/ReactionTime/stats"
)

// openStore opens the configured statistics backend. The returned close
// function releases it.
func openStore(ctx context.Context, sc config.StoreConfig) (*stats.Memory, func() error, error) {
	noop := func() error { return nil }

	var p stats.Persister
	closer := noop
	switch sc.Backend {
	case "memory":
		return stats.NewMemory(), noop, nil
	case "json":
		jp, err := stats.NewJSONPersister(sc.Path)
		if err != nil {
			return nil, nil, err
		}
		p = jp
	case "yaml":
		yp, err := stats.NewYAMLPersister(sc.Path)
		if err != nil {
			return nil, nil, err
		}
		p = yp
	case "sqlite":
		sp, err := stats.OpenSQLite(ctx, sc.Path)
		if err != nil {
			return nil, nil, err
		}
		p, closer = sp, sp.Close
	default:
		return nil, nil, goerr.New("unknown store backend", goerr.V("backend", sc.Backend))
	}

	store, err := stats.Open(ctx, p)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	return store, closer, nil
}
