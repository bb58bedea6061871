package flow

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// ErrNoBaseDataset 即时周期数据缺失，无法作为合并基准
var ErrNoBaseDataset = errors.New("即时周期数据缺失")

// DefaultFetchDelay 相邻周期抓取间的最小间隔，属于数据源限流约定
const DefaultFetchDelay = time.Second

// Config 分析器配置，全部显式传入，不读取进程级全局状态
type Config struct {
	// DataDir 日缓存目录
	DataDir string
	// FetchDelay 相邻周期抓取的间隔，<=0 时取 DefaultFetchDelay
	FetchDelay time.Duration
	// Now 时钟注入点，nil 时取 time.Now
	Now func() time.Time
}

// Analyzer 行业资金流趋势分析器。一次 Run 完成
// 缓存检查 -> 五周期顺序抓取 -> 合并 -> 评分 -> 信号 -> 排序 -> 写缓存。
type Analyzer struct {
	source Source
	store  Store
	delay  time.Duration
	now    func() time.Time
	group  singleflight.Group
	log    *zap.SugaredLogger
}

// NewAnalyzer 创建分析器。store 为 nil 时使用 DataDir 下的文件缓存。
func NewAnalyzer(source Source, store Store, cfg Config) *Analyzer {
	if store == nil {
		store = NewCachedStore(NewFileStore(cfg.DataDir))
	}
	delay := cfg.FetchDelay
	if delay <= 0 {
		delay = DefaultFetchDelay
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Analyzer{
		source: source,
		store:  store,
		delay:  delay,
		now:    now,
		log:    zap.S(),
	}
}

// Run 返回当日按趋势得分降序排列的行业结果表。
// 当日缓存命中时直接返回缓存内容；同一日期键的并发调用会被合并为一次计算。
func (a *Analyzer) Run(ctx context.Context) ([]IndustryRecord, error) {
	key := CacheKey(a.now())
	v, err, _ := a.group.Do(key, func() (interface{}, error) {
		return a.runOnce(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	return v.([]IndustryRecord), nil
}

func (a *Analyzer) runOnce(ctx context.Context, key string) ([]IndustryRecord, error) {
	if records, ok := a.store.Get(key); ok {
		a.log.Infow("命中本地日缓存", "key", key, "rows", len(records))
		return records, nil
	}

	a.log.Infow("开始抓取行业资金流数据", "key", key)

	// 周期间隔是对数据源的限流承诺，严禁并行抓取
	limiter := rate.NewLimiter(rate.Every(a.delay), 1)
	datasets := make(map[Period]PeriodDataset, len(AllPeriods))
	for _, p := range AllPeriods {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		ds, err := a.source.FetchIndustryFlow(ctx, p)
		if err != nil {
			a.log.Warnw("周期数据抓取失败", "period", p, "error", err)
			continue
		}
		if len(ds) == 0 {
			a.log.Warnw("周期数据为空", "period", p)
			continue
		}
		datasets[p] = ds
	}

	if _, ok := datasets[PeriodNow]; !ok {
		a.log.Warnw("即时周期缺失，终止本次分析", "key", key)
		return nil, ErrNoBaseDataset
	}

	turnover, err := a.source.FetchTurnover(ctx)
	if err != nil {
		a.log.Warnw("换手率抓取失败，全部按0处理", "error", err)
		turnover = nil
	}

	bigDealBuys, err := a.source.FetchBigDealBuys(ctx)
	if err != nil {
		a.log.Warnw("大单数据抓取失败，跳过大单印证", "error", err)
		bigDealBuys = nil
	}

	records := Merge(datasets, turnover, bigDealBuys)
	ScoreRecords(records)
	for i := range records {
		records[i].Signal = Classify(&records[i])
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].TrendScore != records[j].TrendScore {
			return records[i].TrendScore > records[j].TrendScore
		}
		return records[i].Industry < records[j].Industry
	})

	if err := a.store.Put(key, records); err != nil {
		a.log.Warnw("结果缓存写入失败", "key", key, "error", err)
	} else {
		a.log.Infow("分析完成并已缓存", "key", key, "rows", len(records))
	}

	return records, nil
}
