// Package parallel 提供通用的有界并发执行器
package parallel

import (
	"sync"

	"go.uber.org/zap"
)

// DefaultMaxWorkers 默认最大并发数
const DefaultMaxWorkers = 10

// Map 用固定大小的工作池对 items 逐项执行 worker，返回全部成功结果。
// 结果按完成顺序收集，不保证与输入顺序一致。单项失败（返回 error 或
// panic）只记录日志并丢弃该项结果，不影响其余任务，也不会中断整批执行。
// 不内置超时与取消，需要截止时间的调用方应在 worker 内自行处理。
func Map[T, R any](items []T, worker func(T) (R, error), maxWorkers int) []R {
	if len(items) == 0 {
		return nil
	}
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}
	if maxWorkers > len(items) {
		maxWorkers = len(items)
	}

	tasks := make(chan T)
	results := make(chan R, len(items))

	var wg sync.WaitGroup
	for i := 0; i < maxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				runOne(item, worker, results)
			}
		}()
	}

	for _, item := range items {
		tasks <- item
	}
	close(tasks)
	wg.Wait()
	close(results)

	out := make([]R, 0, len(items))
	for r := range results {
		out = append(out, r)
	}
	return out
}

// runOne 单独拆出以便 recover 只覆盖一项任务
func runOne[T, R any](item T, worker func(T) (R, error), results chan<- R) {
	defer func() {
		if p := recover(); p != nil {
			zap.S().Errorw("并发任务panic", "item", item, "panic", p)
		}
	}()

	res, err := worker(item)
	if err != nil {
		zap.S().Warnw("并发任务失败", "item", item, "error", err)
		return
	}
	results <- res
}
