package flow

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPercentileRank(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{"升序无并列", []float64{30, 10, 20}, []float64{100, 100.0 / 3, 200.0 / 3}},
		{"并列取平均名次", []float64{5, 5, 10}, []float64{50, 50, 100}},
		{"单行", []float64{7}, []float64{100}},
		{"全部相同", []float64{1, 1, 1, 1}, []float64{62.5, 62.5, 62.5, 62.5}},
		{"空输入", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PercentileRank(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("长度不符: got %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !almostEqual(got[i], tt.want[i]) {
					t.Errorf("第%d项 = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPercentileRankBounds(t *testing.T) {
	inputs := [][]float64{
		{42},
		{-5, 3, 0, 8, -1},
		{1.5, 1.5, 1.5},
		{100, -100, 50, -50, 0, 0, 25},
	}
	for _, vals := range inputs {
		for i, r := range PercentileRank(vals) {
			if r < 0 || r > 100 {
				t.Errorf("百分位排名越界: input=%v idx=%d rank=%v", vals, i, r)
			}
		}
	}
}

func TestScoreRecordsWeights(t *testing.T) {
	records := []IndustryRecord{
		{Industry: "甲", NetInflow3D: 10, ChangePct: 5, TurnoverRate: 5},
		{Industry: "乙", NetInflow3D: -10, ChangePct: -2, TurnoverRate: 1},
	}

	ScoreRecords(records)

	// 甲的加权净额更高，资金分与价格分均应为 100
	if !almostEqual(records[0].MoneyScore, 100) || !almostEqual(records[1].MoneyScore, 50) {
		t.Errorf("资金分 = %v/%v, want 100/50", records[0].MoneyScore, records[1].MoneyScore)
	}
	if !almostEqual(records[0].PriceScore, 100) || !almostEqual(records[1].PriceScore, 50) {
		t.Errorf("价格分 = %v/%v, want 100/50", records[0].PriceScore, records[1].PriceScore)
	}
	// 换手分反向：换手率低的乙得高分
	if !almostEqual(records[1].TurnoverScore, 100) || !almostEqual(records[0].TurnoverScore, 50) {
		t.Errorf("换手分 = %v/%v, want 50/100", records[0].TurnoverScore, records[1].TurnoverScore)
	}
	if !almostEqual(records[0].TrendScore, 100) || !almostEqual(records[1].TrendScore, 50) {
		t.Errorf("趋势得分 = %v/%v, want 100/50", records[0].TrendScore, records[1].TrendScore)
	}
}

func TestScoreRecordsNetflowWeighting(t *testing.T) {
	// 3日权重0.4应压过20日权重0.1
	records := []IndustryRecord{
		{Industry: "甲", NetInflow3D: 10},
		{Industry: "乙", NetInflow20D: 30},
	}

	ScoreRecords(records)

	// 甲: 10*0.4=4, 乙: 30*0.1=3
	if records[0].MoneyScore <= records[1].MoneyScore {
		t.Errorf("3日权重应更高: 甲=%v 乙=%v", records[0].MoneyScore, records[1].MoneyScore)
	}
}

func TestScoreRecordsTrendRounding(t *testing.T) {
	records := []IndustryRecord{
		{Industry: "甲"},
		{Industry: "乙"},
		{Industry: "丙"},
	}
	// 三行全零：资金分、价格分均为并列平均 66.666...
	ScoreRecords(records)

	for _, r := range records {
		if !almostEqual(r.TrendScore, 66.67) {
			t.Errorf("趋势得分应保留两位小数: got %v", r.TrendScore)
		}
	}
}

func TestScoreRecordsAllInRange(t *testing.T) {
	records := []IndustryRecord{
		{Industry: "A", NetInflow3D: 5.5, NetInflow5D: -2, NetInflow10D: 8, NetInflow20D: 1, ChangePct: 3.2, TurnoverRate: 2.5},
		{Industry: "B", NetInflow3D: -1.2, NetInflow5D: 4, ChangePct: -0.8, TurnoverRate: 0.4},
		{Industry: "C", NetInflow10D: 2.2, ChangePct: 1.1, TurnoverRate: 7.8},
		{Industry: "D"},
		{Industry: "E", NetInflow20D: -9, ChangePct: -5.5, TurnoverRate: 1.1},
	}

	ScoreRecords(records)

	for _, r := range records {
		for name, score := range map[string]float64{
			"资金分": r.MoneyScore, "价格分": r.PriceScore,
			"换手分": r.TurnoverScore, "趋势得分": r.TrendScore,
		} {
			if score < 0 || score > 100 {
				t.Errorf("%s %s 越界: %v", r.Industry, name, score)
			}
		}
	}
}
