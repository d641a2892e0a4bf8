// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package heavy is a persistent ledger driver on top of goleveldb. A cuckoo
// filter sits in front of the store so that lookups of fresh secrets, the
// common case, rarely reach the disk.
package heavy

import (
	"os"
	"sync"

	"github.com/dusk-network/dusk-punchcard/pkg/core/ledger"
	"github.com/pkg/errors"
	cuckoo "github.com/seiflotfy/cuckoofilter"
	log "github.com/sirupsen/logrus"
	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// DriverName is the unique identifier for the heavy driver.
const DriverName = "heavy"

// FilterCapacity is the number of secrets the cuckoo filter is sized for.
// Once it is full the ledger keeps working, consulting leveldb directly.
const FilterCapacity = 1 << 20

var secretPrefix = []byte("s:")

type driver struct{}

func (driver) Open(dir string) (ledger.Ledger, error) {
	return Open(dir)
}

func (driver) Name() string {
	return DriverName
}

func init() {
	if err := ledger.Register(driver{}); err != nil {
		log.Panic(err)
	}
}

// Ledger stores each spent secret as a key in leveldb.
type Ledger struct {
	// mu serializes Spend so check and insert are one step. Reads go
	// straight to leveldb, which is safe for concurrent use.
	mu      sync.Mutex
	storage *leveldb.DB

	filterMu  sync.RWMutex
	filter    *cuckoo.Filter
	saturated bool

	count int
}

// Open creates or opens a leveldb ledger located at dir, recovering it if
// it was left corrupted.
func Open(dir string) (*Ledger, error) {
	s, err := leveldb.OpenFile(dir, nil)

	// Try to recover if corrupted.
	if _, corrupted := err.(*lerrors.ErrCorrupted); corrupted {
		s, err = leveldb.RecoverFile(dir, nil)
	}

	if _, accessdenied := err.(*os.PathError); accessdenied {
		return nil, errors.Wrap(err, "could not open or create db")
	}

	if err != nil {
		return nil, err
	}

	l := &Ledger{
		storage: s,
		filter:  cuckoo.NewFilter(FilterCapacity),
	}

	if err := l.load(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return l, nil
}

// load rebuilds the filter and the counter from the stored keys.
func (l *Ledger) load() error {
	iter := l.storage.NewIterator(util.BytesPrefix(secretPrefix), nil)
	defer iter.Release()

	for iter.Next() {
		l.remember(iter.Key()[len(secretPrefix):])
		l.count++
	}
	return iter.Error()
}

func (l *Ledger) remember(secret []byte) {
	l.filterMu.Lock()
	defer l.filterMu.Unlock()

	if !l.saturated && !l.filter.Insert(secret) {
		log.WithField("process", "ledger").
			WithField("capacity", FilterCapacity).
			Warn("heavy ledger filter saturated, falling back to storage lookups")
		l.saturated = true
	}
}

func (l *Ledger) mayContain(secret []byte) bool {
	l.filterMu.RLock()
	defer l.filterMu.RUnlock()
	return l.saturated || l.filter.Lookup(secret)
}

func key(secret []byte) []byte {
	k := make([]byte, 0, len(secretPrefix)+len(secret))
	k = append(k, secretPrefix...)
	return append(k, secret...)
}

func (l *Ledger) has(secret []byte) (bool, error) {
	if !l.mayContain(secret) {
		return false, nil
	}
	return l.storage.Has(key(secret), nil)
}

// Spend implements ledger.Ledger.
func (l *Ledger) Spend(secrets ...[ledger.SecretSize]byte) (bool, error) {
	if ledger.HasDuplicates(secrets) {
		return false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range secrets {
		found, err := l.has(secrets[i][:])
		if err != nil {
			return false, err
		}
		if found {
			return false, nil
		}
	}

	batch := new(leveldb.Batch)
	for i := range secrets {
		batch.Put(key(secrets[i][:]), nil)
	}

	if err := l.storage.Write(batch, nil); err != nil {
		return false, errors.Wrap(err, "heavy: writing spent secrets")
	}

	for i := range secrets {
		l.remember(secrets[i][:])
	}
	l.count += len(secrets)
	return true, nil
}

// Has implements ledger.Ledger.
func (l *Ledger) Has(secret [ledger.SecretSize]byte) (bool, error) {
	return l.has(secret[:])
}

// Count implements ledger.Ledger.
func (l *Ledger) Count() (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count, nil
}

// Close implements ledger.Ledger.
func (l *Ledger) Close() error {
	return l.storage.Close()
}
