//go:build test

package mem

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/searchkit/spellserve/pkg/dictionary"
	"github.com/searchkit/spellserve/pkg/index"
	"github.com/searchkit/spellserve/pkg/query"
	"github.com/searchkit/spellserve/pkg/reply"
	"github.com/searchkit/spellserve/pkg/spell"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var corpus = []string{
	"hello world how are you",
	"help is on the way",
	"the held position was abandoned",
	"program the computer to develop international software",
	"there is a program for that",
	"development of the international program continues",
	"computer programs help there",
	"a world of words and programs",
}

var misspellings = []string{
	"helo", "wrold", "ther", "progra", "compuer",
	"developement", "internationl", "wrds", "hel", "worl",
}

func newEngine() (*index.Index, *dictionary.Store) {
	ix, err := index.NewIndex([]string{"body"})
	if err != nil {
		panic(err)
	}
	for _, body := range corpus {
		ix.AddDocument(map[string]string{"body": body})
	}
	dicts := dictionary.NewStore()
	dicts.Add("extra", "helios", "worldly", "programmatic")
	return ix, dicts
}

func checkAll(ix *index.Index, dicts *dictionary.Store) {
	checker := spell.New(ix, dicts, spell.Options{
		MaxDistance: 2,
		Include:     []string{"extra"},
	})
	for _, term := range misspellings {
		b := reply.NewBuilder()
		if err := checker.Run(b, query.NewToken(term, index.AllFields)); err != nil {
			panic(err)
		}
		if _, err := b.Value(); err != nil {
			panic(err)
		}
	}
}

func TestMemoryLeakBasic(t *testing.T) {
	iterations := []int{100, 500, 1000, 2500}

	for _, iterCount := range iterations {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			runBasicMemoryTest(t, iterCount)
		})
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 500},
		{workers: 2, iterationsPerWorker: 250},
		{workers: 4, iterationsPerWorker: 125},
		{workers: 8, iterationsPerWorker: 64},
	}

	for _, config := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", config.workers, config.iterationsPerWorker), func(t *testing.T) {
			runConcurrentMemoryTest(t, config.workers, config.iterationsPerWorker)
		})
	}
}

func runBasicMemoryTest(t *testing.T, iterations int) {
	ix, dicts := newEngine()

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	for i := 0; i < iterations; i++ {
		checkAll(ix, dicts)
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	memDelta := int64(final.Alloc - baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	totalOps := iterations * len(misspellings)
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		iterations, totalOps, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}

	if goroutineDelta > 2 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

func runConcurrentMemoryTest(t *testing.T, workers, iterationsPerWorker int) {
	ix, dicts := newEngine()

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	var wg sync.WaitGroup
	for worker := 0; worker < workers; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for iter := 0; iter < iterationsPerWorker; iter++ {
				checkAll(ix, dicts)
			}
		}()
	}
	wg.Wait()

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	memDelta := int64(final.Alloc - baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	totalOps := workers * iterationsPerWorker * len(misspellings)
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("workers=%d iter_per_worker=%d total_ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		workers, iterationsPerWorker, totalOps, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}

	if goroutineDelta > 3 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}
