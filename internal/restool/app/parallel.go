package app

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// アーカイブ単位の処理結果
type archiveResult struct {
	path string
	err  error
}

// runParallel は複数アーカイブをワーカープールで並列処理します。
// ワーカー数は-wで指定され、0以下の場合はデフォルト値を使います。
func (a *App) runParallel(ctx context.Context, fn func(context.Context, string) error) error {
	numWorkers := a.config.Workers
	if numWorkers <= 0 {
		numWorkers = 4
	}
	if numWorkers > len(a.config.Archives) {
		numWorkers = len(a.config.Archives)
	}
	a.logger.Printf("%d ワーカーで %d アーカイブを処理します\n", numWorkers, len(a.config.Archives))

	jobs := make(chan string, numWorkers*2)
	results := make(chan archiveResult, numWorkers*2)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				select {
				case <-ctx.Done():
					results <- archiveResult{path: path, err: ctx.Err()}
					continue
				default:
				}
				results <- archiveResult{path: path, err: fn(ctx, path)}
			}
		}()
	}

	// 結果処理用のgoroutineを起動
	var firstErr error
	resultDone := make(chan struct{})
	go func() {
		for result := range results {
			if result.err != nil {
				fmt.Fprintf(os.Stderr, "エラー: %s: %v\n", result.path, result.err)
				if firstErr == nil {
					firstErr = result.err
				}
			}
		}
		close(resultDone)
	}()

	for _, path := range a.config.Archives {
		jobs <- path
	}
	close(jobs)

	wg.Wait()
	close(results)
	<-resultDone

	return firstErr
}
