package flow

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// Store 按日期键存取当日结果表的最小接口，便于在测试中替换文件实现
type Store interface {
	Get(key string) ([]IndustryRecord, bool)
	Put(key string, records []IndustryRecord) error
}

// CacheKey 当日缓存文件名
func CacheKey(t time.Time) string {
	return fmt.Sprintf("行业权重趋势_%s.txt", t.Format("20060102"))
}

// tsv 列顺序固定，schema 变更会导致旧文件解析失败并按缓存未命中处理
var tsvHeader = []string{
	"行业名称", "行业指数", "涨幅_now", "净额_now", "流入资金", "领涨股", "领涨股-涨跌幅",
	"净额_3d", "涨幅_3d", "净额_5d", "涨幅_5d", "净额_10d", "涨幅_10d", "净额_20d", "涨幅_20d",
	"换手率", "大单印证", "资金分", "价格分", "换手分", "趋势得分", "行业信号",
}

const (
	bigDealYes = "确认"
	bigDealNo  = "无"
)

// FileStore 以 UTF-8 制表符分隔文件落盘的日缓存
type FileStore struct {
	dir string
	log *zap.SugaredLogger
}

// NewFileStore 创建文件缓存，dir 为缓存目录
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, log: zap.S()}
}

// Get 读取并解析缓存文件。文件缺失或解析失败都视为未命中。
func (fs *FileStore) Get(key string) ([]IndustryRecord, bool) {
	path := filepath.Join(fs.dir, key)
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fs.log.Warnw("缓存读取失败", "path", path, "error", err)
		}
		return nil, false
	}
	defer f.Close()

	records, err := decodeTSV(f)
	if err != nil {
		fs.log.Warnw("缓存解析失败", "path", path, "error", err)
		return nil, false
	}
	return records, true
}

// Put 将结果表写入缓存文件
func (fs *FileStore) Put(key string, records []IndustryRecord) error {
	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return fmt.Errorf("创建缓存目录失败: %w", err)
	}

	path := filepath.Join(fs.dir, key)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建缓存文件失败: %w", err)
	}
	defer f.Close()

	if err := encodeTSV(f, records); err != nil {
		return fmt.Errorf("写入缓存文件失败: %w", err)
	}
	return nil
}

func encodeTSV(f *os.File, records []IndustryRecord) error {
	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(tsvHeader); err != nil {
		return err
	}
	for _, r := range records {
		bigDeal := bigDealNo
		if r.BigDealConfirmed {
			bigDeal = bigDealYes
		}
		row := []string{
			r.Industry,
			formatFloat(r.Index),
			formatFloat(r.ChangePct),
			formatFloat(r.NetInflow),
			formatFloat(r.Inflow),
			r.LeadingStock,
			formatFloat(r.LeadingStockPct),
			formatFloat(r.NetInflow3D),
			formatFloat(r.ChangePct3D),
			formatFloat(r.NetInflow5D),
			formatFloat(r.ChangePct5D),
			formatFloat(r.NetInflow10D),
			formatFloat(r.ChangePct10D),
			formatFloat(r.NetInflow20D),
			formatFloat(r.ChangePct20D),
			formatFloat(r.TurnoverRate),
			bigDeal,
			formatFloat(r.MoneyScore),
			formatFloat(r.PriceScore),
			formatFloat(r.TurnoverScore),
			formatFloat(r.TrendScore),
			r.Signal,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func decodeTSV(f *os.File) ([]IndustryRecord, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = len(tsvHeader)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("缓存文件为空")
	}
	for i, col := range rows[0] {
		if col != tsvHeader[i] {
			return nil, fmt.Errorf("缓存表头不匹配: %q", col)
		}
	}

	records := make([]IndustryRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := IndustryRecord{
			Industry:         row[0],
			LeadingStock:     row[5],
			BigDealConfirmed: row[16] == bigDealYes,
			Signal:           row[21],
		}
		floats := map[int]*float64{
			1: &rec.Index, 2: &rec.ChangePct, 3: &rec.NetInflow, 4: &rec.Inflow,
			6: &rec.LeadingStockPct,
			7: &rec.NetInflow3D, 8: &rec.ChangePct3D,
			9: &rec.NetInflow5D, 10: &rec.ChangePct5D,
			11: &rec.NetInflow10D, 12: &rec.ChangePct10D,
			13: &rec.NetInflow20D, 14: &rec.ChangePct20D,
			15: &rec.TurnoverRate,
			17: &rec.MoneyScore, 18: &rec.PriceScore, 19: &rec.TurnoverScore, 20: &rec.TrendScore,
		}
		for col, dst := range floats {
			v, err := strconv.ParseFloat(row[col], 64)
			if err != nil {
				return nil, fmt.Errorf("第%d列数值解析失败: %w", col, err)
			}
			*dst = v
		}
		records = append(records, rec)
	}
	return records, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CachedStore 在底层 Store 前加一层进程内 LRU，当日重复读取不再走文件
type CachedStore struct {
	inner Store
	lru   *expirable.LRU[string, []IndustryRecord]
}

// NewCachedStore 包装底层存储。条目最多保留一天，容量很小即可。
func NewCachedStore(inner Store) *CachedStore {
	return &CachedStore{
		inner: inner,
		lru:   expirable.NewLRU[string, []IndustryRecord](8, nil, 24*time.Hour),
	}
}

// Get 优先命中内存，未命中回源并回填
func (cs *CachedStore) Get(key string) ([]IndustryRecord, bool) {
	if records, ok := cs.lru.Get(key); ok {
		return records, true
	}
	records, ok := cs.inner.Get(key)
	if ok {
		cs.lru.Add(key, records)
	}
	return records, ok
}

// Put 先回填内存再落盘。落盘失败时内存仍保留当日结果，错误由调用方记录。
func (cs *CachedStore) Put(key string, records []IndustryRecord) error {
	cs.lru.Add(key, records)
	return cs.inner.Put(key, records)
}
