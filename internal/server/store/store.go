// Package store is the record store the registry writes through: a small
// transactional key-value facade with SQL, Redis and in-memory backends.
//
// Every public registry operation runs inside exactly one Update or View
// call. Writes made through a Txn become visible to other callers only if
// the function passed to Update returns nil.
package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/landlease/internal/cryptox"
)

// Kind is the record type part of a key.
type Kind string

const (
	KindLease   Kind = "lease"
	KindAsset   Kind = "asset"
	KindStatus  Kind = "status"
	KindCounter Kind = "counter"
)

// Key addresses one record.
type Key struct {
	Kind Kind
	ID   uint64
}

func LeaseKey(id uint64) Key { return Key{Kind: KindLease, ID: id} }
func AssetKey(id uint64) Key { return Key{Kind: KindAsset, ID: id} }

var (
	StatusKey  = Key{Kind: KindStatus}
	CounterKey = Key{Kind: KindCounter}
)

func (k Key) String() string {
	return string(k.Kind) + "/" + strconv.FormatUint(k.ID, 10)
}

// sortableID renders an ID so that lexical order equals numeric order.
func sortableID(id uint64) string {
	return fmt.Sprintf("%020d", id)
}

func parseSortableID(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

// Txn is the view of the store inside one transaction.
//
// Get returns common.ErrNotFound for a missing key. Scan visits the records
// of one kind in ascending ID order and stops at the first error returned
// by fn.
type Txn interface {
	Get(ctx context.Context, key Key) ([]byte, error)
	Set(ctx context.Context, key Key, value []byte) error
	Scan(ctx context.Context, kind Kind, fn func(key Key, value []byte) error) error
}

// TxFunc is run by Update and View.
type TxFunc func(ctx context.Context, tx Txn) error

// Store runs functions in atomic transactions. There is no delete.
type Store interface {
	Update(ctx context.Context, fn TxFunc) error
	View(ctx context.Context, fn TxFunc) error
	Close() error
}

// GetRecord reads key and decodes its sealed value into v.
func GetRecord(ctx context.Context, tx Txn, key Key, v any) error {
	raw, err := tx.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := cryptox.Open(raw, v); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// PutRecord seals v and writes it under key.
func PutRecord(ctx context.Context, tx Txn, key Key, v any) error {
	raw, err := cryptox.Seal(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return tx.Set(ctx, key, raw)
}

// ScanRecords decodes every record of kind into a fresh T and passes it to fn.
func ScanRecords[T any](ctx context.Context, tx Txn, kind Kind, fn func(T) error) error {
	return tx.Scan(ctx, kind, func(key Key, value []byte) error {
		var rec T
		if err := cryptox.Open(value, &rec); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return fn(rec)
	})
}
