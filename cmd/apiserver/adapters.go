package main

import (
	"context"

	"github.com/turtacn/CineMood/internal/infrastructure/database/redis"
	"github.com/turtacn/CineMood/internal/infrastructure/storage/minio"
)

// Adapters for HealthHandler
type redisHealthAdapter struct {
	client *redis.Client
}

func (a *redisHealthAdapter) Name() string {
	return "redis"
}

func (a *redisHealthAdapter) Check(ctx context.Context) error {
	return a.client.Ping(ctx)
}

type minioHealthAdapter struct {
	client *minio.MinIOClient
}

func (a *minioHealthAdapter) Name() string {
	return "minio"
}

func (a *minioHealthAdapter) Check(ctx context.Context) error {
	_, err := a.client.HealthCheck(ctx)
	return err
}

//Personal.AI order the ending
