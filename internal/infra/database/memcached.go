package database

import (
	"github.com/bradfitz/gomemcache/memcache"
)

func NewMemcached(server string) *memcache.Client {
	return memcache.New(server)
}

// ConnectMemcached returns a client for server once it answers a ping.
func ConnectMemcached(server string) (*memcache.Client, error) {
	client := NewMemcached(server)
	if err := client.Ping(); err != nil {
		return nil, err
	}
	return client, nil
}
