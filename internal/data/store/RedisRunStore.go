package store

import (
	"context"
	"encoding/json"

	"github.com/akolanti/GoDocQA/internal/config"
	"github.com/akolanti/GoDocQA/internal/data/redisStore"
	"github.com/akolanti/GoDocQA/internal/domain/runModel"
	"github.com/akolanti/GoDocQA/pkg/logger_i"
)

const runKeyPrefix = "run:"

type RedisRunStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisRunStore returns nil when Redis is unreachable.
func GetRedisRunStore(ctx context.Context, addr string, password string) *RedisRunStore {
	s := redisStore.GetRedisStore(ctx, addr, password, config.RedisRunStore)
	if s == nil {
		return nil
	}
	return &RedisRunStore{
		store:  s,
		logger: logger_i.NewLogger("RunStore"),
	}
}

func (s *RedisRunStore) SaveRun(ctx context.Context, run runModel.Run) error {
	log := s.logger.WithTrace(ctx).With("runId", run.Id)
	log.Debug("saving run")
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, runKeyPrefix+run.Id, data, config.RedisRunStoreTTL)
	if err == nil {
		log.Debug("Saved run to Redis")
	}
	return err
}

func (s *RedisRunStore) GetRun(ctx context.Context, runId string) (runModel.Run, bool) {
	var run runModel.Run
	log := s.logger.WithTrace(ctx).With("runId", runId)

	val, err := s.store.Get(ctx, runKeyPrefix+runId)
	if s.store.IsNil(err) {
		return run, false
	} else if err != nil {
		log.Error("Error reading run from Redis", "error", err)
		return run, false
	}

	if err = json.Unmarshal([]byte(val), &run); err != nil {
		log.Error("Error unmarshalling run", "error", err)
		return run, false
	}

	log.Debug("Run found in Redis")
	return run, true
}

func (s *RedisRunStore) DeleteRun(ctx context.Context, runId string) {
	if err := s.store.Del(ctx, runKeyPrefix+runId); err != nil {
		s.logger.Error("Error deleting run from Redis", "runId", runId, "error", err)
		return
	}
	s.logger.Debug("Run deleted from Redis", "runId", runId)
}

func TestRunStore(store *redisStore.Store) *RedisRunStore {
	return &RedisRunStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
