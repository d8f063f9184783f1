// Package kvs stores zones and records in Redis.
//
// Layout under the key prefix (default "dnsresolver:"):
//
//	rr:<zone>:<name>  hash  field = decimal type, value = payload
//	soa:<zone>        string
//	zone:<id>         hash  zone attributes
//	zones             set   zone ids
//
// The live record count of a name is HLEN of its rr hash.
package kvs

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kompox/dnsresolver/domain/model"
)

const DefaultPrefix = "dnsresolver:"

const (
	prefixRecords = "rr:"
	prefixSOA     = "soa:"
	prefixZone    = "zone:"
	keyZones      = "zones"
)

type Database struct {
	rueidis.Client
	Prefix string
}

// OpenFromURL connects to redis://[user:pass@]host:port/db and pings the server.
func OpenFromURL(ctx context.Context, dbURL string) (*Database, error) {
	opt, err := rueidis.ParseURL(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client, err := rueidis.NewClient(opt)
	if err != nil {
		return nil, err
	}
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis server: %w", err)
	}
	return &Database{Client: client, Prefix: DefaultPrefix}, nil
}

func (db *Database) recordsKey(zone model.ZoneID, name model.NameID) string {
	return db.Prefix + prefixRecords + zone.Hex() + ":" + name.Hex()
}

func (db *Database) soaKey(zone model.ZoneID) string {
	return db.Prefix + prefixSOA + zone.Hex()
}

func (db *Database) zoneKey(id model.ZoneID) string {
	return db.Prefix + prefixZone + id.Hex()
}

func (db *Database) zonesKey() string {
	return db.Prefix + keyZones
}

func typeField(t model.ResourceType) string {
	return strconv.FormatUint(uint64(t), 10)
}

func parseTypeField(s string) (model.ResourceType, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid type field %q: %w", s, err)
	}
	return model.ResourceType(n), nil
}
