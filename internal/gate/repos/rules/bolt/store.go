package bolt

import (
	"encoding/binary"
	"time"

	bbolt "go.etcd.io/bbolt"

	"pagegate/internal/gate/repos/rules"
)

var (
	bucketBlock = []byte("block")
	bucketAllow = []byte("allow")
	bucketMeta  = []byte("meta")

	keyVersion = []byte("version")
	keyUpdated = []byte("updated")
)

// boltStore implements rules.Store using bbolt. Rule strings are stored as
// keys with empty values; order is restored from an index prefix so the
// snapshot hands the engine an ordered list.
type boltStore struct {
	db *bbolt.DB
}

// New opens (or creates) a Bolt database at path and ensures buckets exist.
func New(path string) (rules.Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketBlock, bucketAllow, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) Close() error { return s.db.Close() }

// Load reads both rule lists in stored order.
func (s *boltStore) Load() (blocked, allowed []string, err error) {
	err = s.db.View(func(tx *bbolt.Tx) error {
		blocked = readList(tx.Bucket(bucketBlock))
		allowed = readList(tx.Bucket(bucketAllow))
		return nil
	})
	return blocked, allowed, err
}

// Replace swaps both lists and the meta stamps in a single transaction.
func (s *boltStore) Replace(blocked, allowed []string, version uint64, updatedUnix int64) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := writeList(tx, bucketBlock, blocked); err != nil {
			return err
		}
		if err := writeList(tx, bucketAllow, allowed); err != nil {
			return err
		}
		meta := tx.Bucket(bucketMeta)
		if err := meta.Put(keyVersion, u64bytes(version)); err != nil {
			return err
		}
		return meta.Put(keyUpdated, u64bytes(uint64(updatedUnix)))
	})
}

func (s *boltStore) Stats() rules.StoreStats {
	st := rules.StoreStats{}
	_ = s.db.View(func(tx *bbolt.Tx) error {
		if b := tx.Bucket(bucketBlock); b != nil {
			st.BlockCount = uint64(b.Stats().KeyN)
		}
		if b := tx.Bucket(bucketAllow); b != nil {
			st.AllowCount = uint64(b.Stats().KeyN)
		}
		if b := tx.Bucket(bucketMeta); b != nil {
			if v := b.Get(keyVersion); len(v) == 8 {
				st.Version = binary.BigEndian.Uint64(v)
			}
			if v := b.Get(keyUpdated); len(v) == 8 {
				st.UpdatedUnix = int64(binary.BigEndian.Uint64(v))
			}
		}
		return nil
	})
	return st
}

// writeList recreates a bucket with index-prefixed keys so iteration order
// matches insertion order.
func writeList(tx *bbolt.Tx, name []byte, list []string) error {
	if err := tx.DeleteBucket(name); err != nil && err != bbolt.ErrBucketNotFound {
		return err
	}
	b, err := tx.CreateBucket(name)
	if err != nil {
		return err
	}
	for i, rule := range list {
		key := make([]byte, 8+len(rule))
		binary.BigEndian.PutUint64(key[:8], uint64(i))
		copy(key[8:], rule)
		if err := b.Put(key, []byte(rule)); err != nil {
			return err
		}
	}
	return nil
}

func readList(b *bbolt.Bucket) []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, b.Stats().KeyN)
	_ = b.ForEach(func(_, v []byte) error {
		out = append(out, string(v))
		return nil
	})
	return out
}

func u64bytes(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}
