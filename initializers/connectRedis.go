package initializers

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	Ctx         = context.TODO()
)

func ConnectRedis(config *Config) {
	RedisClient = redis.NewClient(&redis.Options{
		Addr: config.RedisUri,
	})

	if _, err := RedisClient.Ping(Ctx).Result(); err != nil {
		log.Fatal("Failed to connect to redis: ", err)
	}

	log.Println("Connected to redis")
}
