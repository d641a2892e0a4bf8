// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver"
	cfg "github.com/dusk-network/dusk-punchcard/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var app = cli.NewApp()

var log = logrus.WithFields(logrus.Fields{
	"app":    "punchcard",
	"prefix": "main",
})

func init() {
	app.Copyright = "Copyright (c) 2020 DUSK"
	app.Name = "punchcard"
	app.Usage = "Anonymous punch card protocol benchmarks"
	app.Author = "DUSK 2020"
	app.Version = semver.MustParse(cfg.Version).String()
	app.Commands = []cli.Command{
		{
			Name:            "bench",
			Aliases:         []string{"b"},
			Usage:           "issues, punches and redeems single-group cards and reports timings",
			ArgsUsage:       "[--config file] [--bench.cards n] [--bench.punches n] ...",
			SkipFlagParsing: true,
			Action:          benchAction,
		},
		{
			Name:            "pairbench",
			Aliases:         []string{"p"},
			Usage:           "same as bench with mergeable BLS12-381 cards, redeemed in pairs",
			ArgsUsage:       "[--config file] [--bench.cards n] [--bench.punches n] ...",
			SkipFlagParsing: true,
			Action:          pairBenchAction,
		},
		{
			Name:   "drivers",
			Usage:  "lists the available ledger drivers",
			Action: driversAction,
		},
	}
}

func main() {
	defer handlePanic()

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func handlePanic() {
	if r := recover(); r != nil {
		log.WithError(fmt.Errorf("%+v", r)).Errorln("Application panic")
		os.Exit(2)
	}
}
