package repository

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
)

var (
	cartBucket    = []byte("carts")
	touchedBucket = []byte("cart_touched")
)

type BoltCartStorageImpl struct {
	db  *bolt.DB
	now func() time.Time
}

func CreateNewBoltCartStorage(db *bolt.DB) (CartStorage, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{cartBucket, touchedBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &BoltCartStorageImpl{db: db, now: time.Now}, nil
}

func (s *BoltCartStorageImpl) Get(ctx context.Context, key string) (value []byte, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(cartBucket).Get([]byte(key))
		if v != nil {
			// bolt values are only valid for the life of the transaction
			value = append([]byte{}, v...)
		}
		return nil
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "BoltCartStorage.Get").Msg("")
	}

	return
}

func (s *BoltCartStorageImpl) Set(ctx context.Context, key string, value []byte) error {
	stamp := make([]byte, 8)
	binary.BigEndian.PutUint64(stamp, uint64(s.now().UnixNano()))

	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(cartBucket).Put([]byte(key), value); err != nil {
			return err
		}
		return tx.Bucket(touchedBucket).Put([]byte(key), stamp)
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "BoltCartStorage.Set").Msg("")
	}

	return err
}

func (s *BoltCartStorageImpl) Delete(ctx context.Context, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(cartBucket).Delete([]byte(key)); err != nil {
			return err
		}
		return tx.Bucket(touchedBucket).Delete([]byte(key))
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "BoltCartStorage.Delete").Msg("")
	}

	return err
}

func (s *BoltCartStorageImpl) PurgeIdle(ctx context.Context, before time.Time) (keys []string, err error) {
	threshold := uint64(before.UnixNano())

	err = s.db.Update(func(tx *bolt.Tx) error {
		touched := tx.Bucket(touchedBucket)

		err := touched.ForEach(func(k, v []byte) error {
			if len(v) == 8 && binary.BigEndian.Uint64(v) >= threshold {
				return nil
			}
			keys = append(keys, string(k))
			return nil
		})
		if err != nil {
			return err
		}

		carts := tx.Bucket(cartBucket)
		for _, key := range keys {
			if err := carts.Delete([]byte(key)); err != nil {
				return err
			}
			if err := touched.Delete([]byte(key)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "BoltCartStorage.PurgeIdle").Msg("")
		return nil, err
	}

	return keys, nil
}
