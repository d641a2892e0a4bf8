// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"context"
	"fmt"

	cfg "github.com/dusk-network/dusk-punchcard/pkg/config"
	"github.com/dusk-network/dusk-punchcard/pkg/core/ledger"
	"github.com/dusk-network/dusk-punchcard/pkg/core/punchcard"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

// benchParams are the knobs of a benchmark run.
type benchParams struct {
	cards   int
	punches uint32
	workers int
}

func paramsFromConfig() (benchParams, error) {
	c := cfg.Get().Bench
	p := benchParams{cards: c.Cards, punches: c.Punches, workers: c.Workers}

	if p.cards <= 0 || p.punches == 0 {
		return p, fmt.Errorf("bench needs at least one card and one punch, got %d cards and %d punches", p.cards, p.punches)
	}
	if p.workers <= 0 {
		p.workers = 1
	}
	return p, nil
}

func benchAction(ctx *cli.Context) error {
	s, err := setup(ctx.Args())
	if err != nil {
		return err
	}
	defer s.Close()

	suite, err := punchcard.SuiteByName(cfg.Get().Bench.Suite)
	if err != nil {
		return err
	}

	p, err := paramsFromConfig()
	if err != nil {
		return err
	}

	r, err := runBench(context.Background(), suite, s.ledger, p)
	if err != nil {
		return err
	}

	r.render(ctx.App.Writer)
	return nil
}

type redemption struct {
	secret [punchcard.SecretSize]byte
	final  []byte
}

// runBench issues p.cards cards, punches each p.punches times and redeems
// them concurrently over p.workers workers.
func runBench(ctx context.Context, suite punchcard.Suite, l ledger.Ledger, p benchParams) (*report, error) {
	r := &report{title: fmt.Sprintf("%s: %d cards x %d punches", suite.Name, p.cards, p.punches)}

	var srv *punchcard.Server
	if err := r.measure("server setup", 1, func() error {
		var err error
		srv, err = punchcard.NewServer(suite, l, nil)
		return err
	}); err != nil {
		return nil, err
	}

	cards := make([]*punchcard.Card, p.cards)
	if err := r.measure("card setup", p.cards, func() error {
		for i := range cards {
			c, err := punchcard.NewCard(suite, nil)
			if err != nil {
				return err
			}
			cards[i] = c
		}
		return nil
	}); err != nil {
		return nil, err
	}

	pub := srv.PublicKey()
	if err := r.measure("punch", p.cards*int(p.punches), func() error {
		for _, c := range cards {
			for i := uint32(0); i < p.punches; i++ {
				newRep, proof, err := srv.Punch(c.Representative())
				if err != nil {
					return err
				}
				if _, err := c.VerifyAndRemask(newRep, pub, proof); err != nil {
					return err
				}
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	redemptions := make([]redemption, len(cards))
	if err := r.measure("unmask", p.cards, func() error {
		for i, c := range cards {
			secret, final, err := c.UnmaskRedeem()
			if err != nil {
				return err
			}
			redemptions[i] = redemption{secret: secret, final: final}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := r.measure("redeem", p.cards, func() error {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.workers)

		for i := range redemptions {
			rd := redemptions[i]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				ok, err := srv.Verify(rd.final, rd.secret, p.punches)
				if err != nil {
					return err
				}
				if !ok {
					return errors.New("redemption refused")
				}
				return nil
			})
		}
		return g.Wait()
	}); err != nil {
		return nil, err
	}

	if err := r.measure("lookup", p.cards, func() error {
		for _, rd := range redemptions {
			found, err := srv.Has(rd.secret)
			if err != nil {
				return err
			}
			if !found {
				return errors.New("redeemed secret missing from ledger")
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	n, err := srv.Redeemed()
	if err != nil {
		return nil, err
	}
	log.WithField("redeemed", n).Info("bench complete")
	return r, nil
}
