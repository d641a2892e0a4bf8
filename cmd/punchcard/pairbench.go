// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/dusk-network/dusk-punchcard/pkg/core/ledger"
	"github.com/dusk-network/dusk-punchcard/pkg/core/punchcard"
	"github.com/dusk-network/dusk-punchcard/pkg/core/punchcard/pair"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"
)

func pairBenchAction(ctx *cli.Context) error {
	s, err := setup(ctx.Args())
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := paramsFromConfig()
	if err != nil {
		return err
	}

	r, err := runPairBench(context.Background(), s.ledger, p)
	if err != nil {
		return err
	}

	r.render(ctx.App.Writer)
	return nil
}

type mergedRedemption struct {
	secretA [punchcard.SecretSize]byte
	secretB [punchcard.SecretSize]byte
	merged  []byte
	punches uint32
}

// runPairBench issues p.cards pair cards, rounded down to an even number,
// punches each p.punches times, merges them two by two and redeems the
// merged values concurrently.
func runPairBench(ctx context.Context, l ledger.Ledger, p benchParams) (*report, error) {
	n := p.cards &^ 1
	if n == 0 {
		return nil, errors.New("pairbench needs at least two cards")
	}

	r := &report{title: fmt.Sprintf("bls12-381 pairs: %d cards x %d punches", n, p.punches)}

	var srv *pair.Server
	if err := r.measure("server setup", 1, func() error {
		var err error
		srv, err = pair.NewServer(l, nil)
		return err
	}); err != nil {
		return nil, err
	}

	cards := make([]*pair.Card, n)
	if err := r.measure("card setup", n, func() error {
		for i := range cards {
			c, err := pair.NewCard(nil)
			if err != nil {
				return err
			}
			cards[i] = c
		}
		return nil
	}); err != nil {
		return nil, err
	}

	pub1, pub2 := srv.PublicKeys()
	if err := r.measure("punch", n*int(p.punches), func() error {
		for _, c := range cards {
			for i := uint32(0); i < p.punches; i++ {
				rep1, rep2 := c.Representatives()
				new1, new2, proof1, proof2, err := srv.Punch(rep1, rep2)
				if err != nil {
					return err
				}
				if _, _, err := c.VerifyAndRemask(new1, new2, pub1, pub2, proof1, proof2); err != nil {
					return err
				}
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	merged := make([]mergedRedemption, n/2)
	if err := r.measure("merge", n/2, func() error {
		for i := range merged {
			a, b := cards[2*i], cards[2*i+1]
			total := a.Count() + b.Count()

			secretA, secretB, m, err := a.MergeRedeem(b)
			if err != nil {
				return err
			}
			merged[i] = mergedRedemption{secretA: secretA, secretB: secretB, merged: m, punches: total}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := r.measure("redeem", n/2, func() error {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(p.workers)

		for i := range merged {
			m := merged[i]
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				ok, err := srv.Verify(m.merged, m.secretA, m.secretB, m.punches)
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

	redeemed, err := srv.Redeemed()
	if err != nil {
		return nil, err
	}
	log.WithField("redeemed", redeemed).Info("pair bench complete")
	return r, nil
}
