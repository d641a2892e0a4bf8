// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package bunt is a ledger driver on top of buntdb, an in-memory key/value
// store with an append-only file for durability.
package bunt

import (
	"path/filepath"

	"github.com/dusk-network/dusk-punchcard/pkg/core/ledger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/buntdb"
)

// DriverName is the unique identifier for the bunt driver.
const DriverName = "bunt"

// FileName is the name of the buntdb file created inside the ledger dir.
const FileName = "ledger.db"

const secretPrefix = "s:"

var errSpent = errors.New("secret already spent")

type driver struct{}

func (driver) Open(dir string) (ledger.Ledger, error) {
	path := ":memory:"
	if dir != "" {
		path = filepath.Join(dir, FileName)
	}
	return Open(path)
}

func (driver) Name() string {
	return DriverName
}

func init() {
	if err := ledger.Register(driver{}); err != nil {
		log.Panic(err)
	}
}

// Ledger stores each spent secret as a buntdb key.
type Ledger struct {
	db *buntdb.DB
}

// Open opens/creates the buntdb file at path with buntdb.EverySecond sync
// policy. Pass ":memory:" for a ledger that is never written to disk.
func Open(path string) (*Ledger, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, err
	}

	var config buntdb.Config
	if err := db.ReadConfig(&config); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fast and safer sync policy.
	// In addition, syncing is done on closing the ledger.
	config.SyncPolicy = buntdb.EverySecond
	config.AutoShrinkDisabled = false

	if err := db.SetConfig(config); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Ledger{db: db}, nil
}

func key(secret []byte) string {
	return secretPrefix + string(secret)
}

// Spend implements ledger.Ledger. buntdb allows a single writable
// transaction at a time, which makes the check and the insert atomic.
func (l *Ledger) Spend(secrets ...[ledger.SecretSize]byte) (bool, error) {
	if ledger.HasDuplicates(secrets) {
		return false, nil
	}

	err := l.db.Update(func(tx *buntdb.Tx) error {
		for i := range secrets {
			_, err := tx.Get(key(secrets[i][:]))
			if err == nil {
				return errSpent
			}
			if err != buntdb.ErrNotFound {
				return err
			}
		}

		for i := range secrets {
			if _, _, err := tx.Set(key(secrets[i][:]), "", nil); err != nil {
				return err
			}
		}
		return nil
	})

	switch {
	case err == errSpent:
		return false, nil
	case err != nil:
		return false, errors.Wrap(err, "bunt: spending secrets")
	}
	return true, nil
}

// Has implements ledger.Ledger.
func (l *Ledger) Has(secret [ledger.SecretSize]byte) (bool, error) {
	err := l.db.View(func(tx *buntdb.Tx) error {
		_, err := tx.Get(key(secret[:]))
		return err
	})

	switch {
	case err == buntdb.ErrNotFound:
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// Count implements ledger.Ledger.
func (l *Ledger) Count() (int, error) {
	var n int
	err := l.db.View(func(tx *buntdb.Tx) error {
		var err error
		n, err = tx.Len()
		return err
	})
	return n, err
}

// Close implements ledger.Ledger.
func (l *Ledger) Close() error {
	return l.db.Close()
}
