// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"fmt"
	"io"

	cfg "github.com/dusk-network/dusk-punchcard/pkg/config"
	"github.com/dusk-network/dusk-punchcard/pkg/core/ledger"
	_ "github.com/dusk-network/dusk-punchcard/pkg/core/ledger/bunt"
	_ "github.com/dusk-network/dusk-punchcard/pkg/core/ledger/heavy"
	_ "github.com/dusk-network/dusk-punchcard/pkg/core/ledger/lite"
	_ "github.com/dusk-network/dusk-punchcard/pkg/core/ledger/stormdb"
	"github.com/dusk-network/dusk-punchcard/pkg/util/nativeutils/logging"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// session holds what every benchmark command needs once configuration is
// loaded.
type session struct {
	ledger  ledger.Ledger
	logFile io.WriteCloser
}

func (s *session) Close() {
	if err := s.ledger.Close(); err != nil {
		log.WithError(err).Warn("closing ledger")
	}
	_ = s.logFile.Close()
}

// setup loads the configuration from args, sets up logging and opens the
// configured ledger, preloading it if requested.
func setup(args []string) (*session, error) {
	// Loading all configurations. Fail-fast if critical error occurs
	if err := cfg.Load(args); err != nil {
		return nil, errors.Wrap(err, "could not load config")
	}

	// Set up logging.
	// Any subsystem should be initialized after config and logger loading
	logFile, err := logging.OpenOutput(cfg.Get().Logger.Output)
	if err != nil {
		return nil, err
	}
	logging.InitLog(logFile)

	if f := cfg.Get().UsedConfigFile; f != "" {
		log.WithField("file", f).Info("Loaded config file")
	}

	c := cfg.Get().Ledger
	l, err := ledger.Open(c.Driver, c.Dir)
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}

	if c.Preload > 0 {
		if err := ledger.Preload(l, c.Preload); err != nil {
			_ = l.Close()
			_ = logFile.Close()
			return nil, err
		}
	}

	log.WithField("driver", c.Driver).
		WithField("preload", c.Preload).
		Info("ledger ready")

	return &session{ledger: l, logFile: logFile}, nil
}

func driversAction(ctx *cli.Context) error {
	for _, name := range ledger.Drivers() {
		fmt.Fprintln(ctx.App.Writer, name)
	}
	return nil
}
