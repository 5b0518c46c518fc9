package bolt

import (
	"time"

	bolt "go.etcd.io/bbolt"
)

func Open(path string) (*bolt.DB, error) {
	return bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
}
