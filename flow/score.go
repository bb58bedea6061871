package flow

import (
	"math"
	"sort"
)

// PercentileRank 计算各值的百分位排名（0,100]，并列值取平均名次。
// 与 pandas rank(pct=True)*100 的口径一致。
func PercentileRank(values []float64) []float64 {
	n := len(values)
	if n == 0 {
		return nil
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return values[idx[a]] < values[idx[b]]
	})

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// 名次从1开始，并列取平均
		avg := float64(i+j+2) / 2.0
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}

	out := make([]float64, n)
	for i, r := range ranks {
		out[i] = r / float64(n) * 100.0
	}
	return out
}

// ScoreRecords 就地计算资金分、价格分、换手分和趋势得分。
// 资金分基于 0.4*净额_3d + 0.3*净额_5d + 0.2*净额_10d + 0.1*净额_20d 的
// 百分位排名；价格分以即时涨幅为准；换手分反向（缩量得高分）；
// 趋势得分 = (资金分*0.5 + 价格分*0.5) 保留两位小数。
func ScoreRecords(records []IndustryRecord) {
	n := len(records)
	if n == 0 {
		return
	}

	money := make([]float64, n)
	price := make([]float64, n)
	turnover := make([]float64, n)
	for i, r := range records {
		money[i] = r.NetInflow3D*0.4 + r.NetInflow5D*0.3 + r.NetInflow10D*0.2 + r.NetInflow20D*0.1
		price[i] = r.ChangePct
		// 取负后升序排名等价于降序排名，换手率越低分越高
		turnover[i] = -r.TurnoverRate
	}

	moneyRank := PercentileRank(money)
	priceRank := PercentileRank(price)
	turnoverRank := PercentileRank(turnover)

	for i := range records {
		records[i].MoneyScore = moneyRank[i]
		records[i].PriceScore = priceRank[i]
		records[i].TurnoverScore = turnoverRank[i]
		records[i].TrendScore = round2(moneyRank[i]*0.5 + priceRank[i]*0.5)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100.0) / 100.0
}
