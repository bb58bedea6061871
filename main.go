package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"flowquant/db"
	"flowquant/flow"
	qhttp "flowquant/http"
	"flowquant/logger"
	"flowquant/market"
	"flowquant/market/providers"
	"flowquant/parallel"
)

type Config struct {
	DataDir    string   `yaml:"data_dir"`
	FetchDelay string   `yaml:"fetch_delay"`
	UseMock    bool     `yaml:"use_mock"`
	Symbols    []string `yaml:"symbols"`
	Database   struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Http struct {
		Port int `yaml:"port"`
	} `yaml:"http"`
	Log logger.Config `yaml:"log"`
}

func main() {
	// 1. 加载配置
	config, err := loadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. 初始化日志
	flush, err := logger.Init(config.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer flush()

	// 3. 初始化数据库
	if err := db.InitDB(config.Database.Path); err != nil {
		zap.S().Fatalw("数据库初始化失败", "path", config.Database.Path, "error", err)
	}
	defer db.Close()
	zap.S().Infow("数据库已就绪", "path", config.Database.Path)

	// 4. 构建分析器
	fetchDelay := flow.DefaultFetchDelay
	if config.FetchDelay != "" {
		if d, err := time.ParseDuration(config.FetchDelay); err == nil {
			fetchDelay = d
		} else {
			zap.S().Warnw("fetch_delay 配置无效，使用默认值", "value", config.FetchDelay)
		}
	}

	var source flow.Source
	if config.UseMock {
		zap.S().Warn("使用离线模拟数据源")
		source = providers.NewMockSource()
	} else {
		source = providers.NewClient()
	}

	store := flow.NewCachedStore(flow.NewFileStore(config.DataDir))
	analyzer := flow.NewAnalyzer(source, store, flow.Config{
		DataDir:    config.DataDir,
		FetchDelay: fetchDelay,
	})

	// 5. 启动时刷新一次，之后每日刷新
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go runDaily(ctx, analyzer, store, config.Symbols)

	// 6. 启动HTTP服务
	server := qhttp.NewServer(config.Http.Port, analyzer)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			zap.S().Fatalw("HTTP服务启动失败", "error", err)
		}
	}()

	// 7. 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.S().Info("收到退出信号，开始关闭...")

	cancel()
	if err := server.Stop(); err != nil {
		zap.S().Warnw("HTTP服务关闭异常", "error", err)
	}
}

// runDaily 立即执行一次分析，此后每24小时刷新一次
func runDaily(ctx context.Context, analyzer *flow.Analyzer, store flow.Store, symbols []string) {
	refresh(ctx, analyzer, store, symbols)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			refresh(ctx, analyzer, store, symbols)
		case <-ctx.Done():
			return
		}
	}
}

func refresh(ctx context.Context, analyzer *flow.Analyzer, store flow.Store, symbols []string) {
	key := flow.CacheKey(time.Now())
	_, cacheHit := store.Get(key)

	start := time.Now()
	records, err := analyzer.Run(ctx)
	if err != nil {
		zap.S().Warnw("行业趋势刷新失败", "error", err)
		return
	}

	if err := db.SaveAnalysisRun(time.Now().Format("20060102"), len(records), cacheHit, time.Since(start)); err != nil {
		zap.S().Warnw("分析记录保存失败", "error", err)
	}

	// 顺带留存重点个股快照，单只失败不影响整体
	if len(symbols) > 0 && !cacheHit {
		spots := market.FetchSpotBatch(symbols, parallel.DefaultMaxWorkers)
		if err := db.SaveSpots(spots); err != nil {
			zap.S().Warnw("个股快照保存失败", "error", err)
		}
	}
}

func loadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
