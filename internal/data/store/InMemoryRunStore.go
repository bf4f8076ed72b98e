package store

import (
	"context"
	"sync"

	"github.com/akolanti/GoDocQA/internal/domain/runModel"
	"github.com/akolanti/GoDocQA/pkg/logger_i"
)

var inMemLogger = logger_i.NewLogger("InMem RunStore")

type InMemoryRunStore struct {
	runMutex *sync.RWMutex
	runMap   map[string]runModel.Run
}

func InitInMemoryRunStore() *InMemoryRunStore {
	return &InMemoryRunStore{
		runMutex: new(sync.RWMutex),
		runMap:   make(map[string]runModel.Run),
	}
}

func (store *InMemoryRunStore) SaveRun(ctx context.Context, run runModel.Run) error {
	store.runMutex.Lock()
	defer store.runMutex.Unlock()
	store.runMap[run.Id] = run
	inMemLogger.Debug("Saved run to store", "runId", run.Id)
	return nil
}

func (store *InMemoryRunStore) GetRun(ctx context.Context, runId string) (runModel.Run, bool) {
	store.runMutex.RLock()
	defer store.runMutex.RUnlock()
	result, found := store.runMap[runId]
	inMemLogger.Debug("Run lookup", "runId", runId, "found", found)
	return result, found
}

func (store *InMemoryRunStore) DeleteRun(ctx context.Context, runId string) {
	store.runMutex.Lock()
	defer store.runMutex.Unlock()
	delete(store.runMap, runId)
}

// NewRunStore prefers Redis and falls back to memory when allowed.
func NewRunStore(ctx context.Context, addr string, password string, fallback bool) (runModel.RunStore, error) {
	if redisRuns := GetRedisRunStore(ctx, addr, password); redisRuns != nil {
		return redisRuns, nil
	}
	if !fallback {
		return nil, ErrRunStoreUnavailable
	}
	inMemLogger.Warn("Redis unavailable, using in-memory run store")
	return InitInMemoryRunStore(), nil
}
