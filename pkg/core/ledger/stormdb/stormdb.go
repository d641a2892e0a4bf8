// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package stormdb is a ledger driver on top of storm, a toolkit over bbolt.
package stormdb

import (
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/asdine/storm/v3"
	"github.com/dusk-network/dusk-punchcard/pkg/core/ledger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DriverName is the unique identifier for the storm driver.
const DriverName = "storm"

// FileName is the name of the bbolt file created inside the ledger dir.
const FileName = "ledger.storm"

type driver struct{}

func (driver) Open(dir string) (ledger.Ledger, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return Open(filepath.Join(dir, FileName))
}

func (driver) Name() string {
	return DriverName
}

func init() {
	if err := ledger.Register(driver{}); err != nil {
		log.Panic(err)
	}
}

// spentSecret is the record stored for every redeemed secret.
type spentSecret struct {
	ID string `storm:"id"`
}

// Ledger stores spent secrets as storm records keyed by their hex form.
type Ledger struct {
	db *storm.DB
}

// Open opens or creates the storm file at path.
func Open(path string) (*Ledger, error) {
	db, err := storm.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "storm: could not open %s", path)
	}
	return &Ledger{db: db}, nil
}

func id(secret []byte) string {
	return hex.EncodeToString(secret)
}

// Spend implements ledger.Ledger. bbolt serializes writable transactions,
// so the lookups and the inserts below form a single atomic step.
func (l *Ledger) Spend(secrets ...[ledger.SecretSize]byte) (bool, error) {
	if ledger.HasDuplicates(secrets) {
		return false, nil
	}

	tx, err := l.db.Begin(true)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i := range secrets {
		var s spentSecret
		err := tx.One("ID", id(secrets[i][:]), &s)
		if err == nil {
			return false, nil
		}
		if err != storm.ErrNotFound {
			return false, err
		}
	}

	for i := range secrets {
		if err := tx.Save(&spentSecret{ID: id(secrets[i][:])}); err != nil {
			return false, errors.Wrap(err, "storm: saving spent secret")
		}
	}

	if err := tx.Commit(); err != nil {
		return false, errors.Wrap(err, "storm: committing spent secrets")
	}
	return true, nil
}

// Has implements ledger.Ledger.
func (l *Ledger) Has(secret [ledger.SecretSize]byte) (bool, error) {
	var s spentSecret
	err := l.db.One("ID", id(secret[:]), &s)

	switch {
	case err == storm.ErrNotFound:
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// Count implements ledger.Ledger.
func (l *Ledger) Count() (int, error) {
	n, err := l.db.Count(&spentSecret{})
	if err == storm.ErrNotFound {
		return 0, nil
	}
	return n, err
}

// Close implements ledger.Ledger.
func (l *Ledger) Close() error {
	return l.db.Close()
}
