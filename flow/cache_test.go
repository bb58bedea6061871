package flow

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func sampleRecords() []IndustryRecord {
	records := []IndustryRecord{
		{
			Industry: "半导体", Index: 1500.5, ChangePct: 3.2, NetInflow: 25.6, Inflow: 40.1,
			LeadingStock: "中芯国际", LeadingStockPct: 5.1,
			NetInflow3D: 60.2, ChangePct3D: 8.8, NetInflow5D: 80.4, ChangePct5D: 10.2,
			NetInflow10D: 95.7, ChangePct10D: 12.5, NetInflow20D: 120.5, ChangePct20D: 15.2,
			TurnoverRate: 2.8, BigDealConfirmed: true,
		},
		{
			Industry: "银行", Index: 890.2, ChangePct: 0.4, NetInflow: 12.3, Inflow: 30.0,
			LeadingStock: "招商银行", LeadingStockPct: 1.2,
			NetInflow20D: 44.1, ChangePct20D: 2.3,
			TurnoverRate: 0.6,
		},
	}
	ScoreRecords(records)
	for i := range records {
		records[i].Signal = Classify(&records[i])
	}
	return records
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	key := CacheKey(time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local))

	want := sampleRecords()
	if err := store.Put(key, want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok := store.Get(key)
	if !ok {
		t.Fatal("写入后应能命中缓存")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("缓存往返后内容不一致:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestFileStoreMiss(t *testing.T) {
	store := NewFileStore(t.TempDir())
	if _, ok := store.Get("行业权重趋势_20260830.txt"); ok {
		t.Error("文件不存在时应未命中")
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)
	key := "行业权重趋势_20260830.txt"

	tests := []struct {
		name    string
		content string
	}{
		{"乱码内容", "this is not a cache file"},
		{"表头不匹配", "col_a\tcol_b\n1\t2\n"},
		{"数值列非法", func() string {
			good := sampleRecords()
			_ = NewFileStore(dir).Put(key, good)
			data, _ := os.ReadFile(filepath.Join(dir, key))
			return string(data[:len(data)-20]) // 截断破坏最后一行
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(filepath.Join(dir, key), []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, ok := store.Get(key); ok {
				t.Error("损坏的缓存文件应按未命中处理")
			}
		})
	}
}

func TestCacheKey(t *testing.T) {
	key := CacheKey(time.Date(2026, 8, 30, 23, 59, 0, 0, time.Local))
	if key != "行业权重趋势_20260830.txt" {
		t.Errorf("CacheKey = %s", key)
	}
}

func TestCachedStoreMemoryLayer(t *testing.T) {
	dir := t.TempDir()
	store := NewCachedStore(NewFileStore(dir))
	key := "行业权重趋势_20260830.txt"
	want := sampleRecords()

	if err := store.Put(key, want); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// 删除底层文件后内存层仍应命中
	if err := os.Remove(filepath.Join(dir, key)); err != nil {
		t.Fatal(err)
	}
	got, ok := store.Get(key)
	if !ok {
		t.Fatal("内存层应命中")
	}
	if !reflect.DeepEqual(got, want) {
		t.Error("内存层内容与写入不一致")
	}
}

func TestCachedStoreFallthrough(t *testing.T) {
	dir := t.TempDir()
	key := "行业权重趋势_20260830.txt"
	want := sampleRecords()

	// 用独立实例写文件，绕过内存层
	if err := NewFileStore(dir).Put(key, want); err != nil {
		t.Fatal(err)
	}

	store := NewCachedStore(NewFileStore(dir))
	got, ok := store.Get(key)
	if !ok {
		t.Fatal("应回源到文件层")
	}
	if !reflect.DeepEqual(got, want) {
		t.Error("回源内容与文件不一致")
	}
}
