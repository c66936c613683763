package data

import (
	"context"
	"fmt"

	"link-catalog/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(NewData, NewCatalogRepo, NewHitCounterRepo, NewSessionRepo)

const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Data holds the key-value store shared by all repositories.
type Data struct {
	kv KV
}

// NewData opens the store selected by c.Driver.
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	log := log.NewHelper(logger)

	kv, err := openKV(context.Background(), c)
	if err != nil {
		return nil, nil, err
	}
	log.Infof("using %s key-value store", driverName(c))

	d := &Data{kv: kv}

	cleanup := func() {
		log.Info("message", "closing the data resources")
		if err := d.kv.Close(); err != nil {
			log.Error(err)
		}
	}

	return d, cleanup, nil
}

// NewDataWithKV wraps an already opened store.
func NewDataWithKV(kv KV) *Data {
	return &Data{kv: kv}
}

func driverName(c *conf.Data) string {
	if c == nil || c.Driver == "" {
		return DriverMemory
	}
	return c.Driver
}

func openKV(ctx context.Context, c *conf.Data) (KV, error) {
	switch driver := driverName(c); driver {
	case DriverMemory:
		return NewMemoryKV(), nil
	case DriverRedis:
		if c.Redis == nil {
			return nil, fmt.Errorf("data.redis is required for driver %q", driver)
		}
		rdb := redis.NewClient(&redis.Options{
			Addr:         c.Redis.Addr,
			Password:     c.Redis.Password,
			DB:           c.Redis.Db,
			ReadTimeout:  c.Redis.ReadTimeout.AsDuration(),
			WriteTimeout: c.Redis.WriteTimeout.AsDuration(),
		})
		return NewRedisKV(rdb), nil
	case DriverSQLite, DriverPostgres:
		if c.Database == nil || c.Database.Source == "" {
			return nil, fmt.Errorf("data.database.source is required for driver %q", driver)
		}
		return OpenSQLKV(ctx, driver, c.Database.Source)
	default:
		return nil, fmt.Errorf("unknown data driver %q", driver)
	}
}
