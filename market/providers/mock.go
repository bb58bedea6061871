package providers

import (
	"context"

	"flowquant/flow"
)

// MockSource 离线数据源，固定返回一组确定性的行业数据，
// 供本地开发与联调使用（config 中 use_mock 开启）
type MockSource struct{}

// NewMockSource 创建离线数据源
func NewMockSource() *MockSource {
	return &MockSource{}
}

var mockIndustries = []struct {
	name     string
	index    float64
	pct      float64
	net      float64
	leading  string
	turnover float64
}{
	{"半导体", 1580.2, 3.21, 25.6, "中芯国际", 2.8},
	{"银行", 890.5, 0.45, 12.3, "招商银行", 0.6},
	{"医药生物", 1220.8, -1.10, -8.4, "恒瑞医药", 1.9},
	{"电力设备", 1456.3, 2.05, 18.9, "宁德时代", 3.4},
	{"食品饮料", 1890.1, -0.32, -2.1, "贵州茅台", 0.9},
	{"计算机", 1340.6, 1.78, 9.7, "海康威视", 4.1},
	{"有色金属", 1105.4, 0.88, 5.2, "紫金矿业", 2.2},
	{"房地产", 760.9, -2.44, -15.8, "保利发展", 1.5},
}

// FetchIndustryFlow 返回按周期线性缩放的确定性数据
func (ms *MockSource) FetchIndustryFlow(_ context.Context, period flow.Period) (flow.PeriodDataset, error) {
	scale := map[flow.Period]float64{
		flow.PeriodNow: 1.0,
		flow.Period3D:  2.4,
		flow.Period5D:  3.6,
		flow.Period10D: 6.0,
		flow.Period20D: 10.0,
	}[period]

	dataset := make(flow.PeriodDataset, len(mockIndustries))
	for _, ind := range mockIndustries {
		dataset[ind.name] = flow.PeriodRow{
			Industry:        ind.name,
			Index:           ind.index,
			ChangePct:       ind.pct,
			StageChangePct:  ind.pct * scale * 0.8,
			NetInflow:       ind.net * scale,
			Inflow:          (ind.net + 20) * scale,
			Outflow:         20 * scale,
			LeadingStock:    ind.leading,
			LeadingStockPct: ind.pct * 1.5,
		}
	}
	return dataset, nil
}

// FetchTurnover 返回固定换手率
func (ms *MockSource) FetchTurnover(_ context.Context) (map[string]float64, error) {
	turnover := make(map[string]float64, len(mockIndustries))
	for _, ind := range mockIndustries {
		turnover[ind.name] = ind.turnover
	}
	return turnover, nil
}

// FetchBigDealBuys 固定确认两只领涨股的买入大单
func (ms *MockSource) FetchBigDealBuys(_ context.Context) (map[string]struct{}, error) {
	return map[string]struct{}{
		"中芯国际": {},
		"宁德时代": {},
	}, nil
}
