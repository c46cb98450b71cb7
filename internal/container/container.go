package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/groceryhub/grocery-api/config"
	"github.com/groceryhub/grocery-api/internal/infrastructure/db"
	"github.com/groceryhub/grocery-api/internal/infrastructure/kv"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	kvStore     kv.Store
	database    *db.DB
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }
func SetRedis(r *redis.Client)   { redisClient = r }
func GetRedis() *redis.Client    { return redisClient }
func SetKV(s kv.Store)           { kvStore = s }
func GetKV() kv.Store            { return kvStore }
func SetDB(d *db.DB)             { database = d }
func GetDB() *db.DB              { return database }
