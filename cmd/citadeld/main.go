// Command citadeld opens the backing UTXO store, checks it for an
// interrupted best-block transition left by an unclean shutdown, and
// constructs the bottom of a cache stack. Driving that stack through
// block connection, disconnection, and mempool acceptance is the job of
// the (out of scope) validation and networking layers built on top of
// this package.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/citadel-chain/citadeld/conf"
	"github.com/citadel-chain/citadeld/log"
	"github.com/citadel-chain/citadeld/persist/db"
	"github.com/citadel-chain/citadeld/utxo"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "citadeld:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := conf.ParseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := conf.InitConfig(opts.ConfigFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}

	if err := log.InitLogger(cfg.DataDir, cfg.LogLevel); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}

	dbw, err := db.NewDBWrapper(&db.DBOption{
		FilePath:  filepath.Join(cfg.DataDir, "chainstate"),
		CacheSize: cfg.DBCacheMiB << 20,
	})
	if err != nil {
		return fmt.Errorf("opening backing store: %w", err)
	}
	defer dbw.Close()

	base := utxo.NewCoinsViewDB(dbw)
	if pending := base.HeadBlocks(); len(pending) == 2 {
		log.Print("utxo", "warn", "found interrupted best-block transition %x -> %x; recovery is the caller's responsibility", pending[0], pending[1])
	}

	tip := utxo.NewCoinsViewCache(base)
	log.Print("utxo", "info", "cache stack ready at best block %x", tip.BestBlock())

	return nil
}
