package flow

// Merge 以即时周期为基准做左连接：阶段周期的净额/涨幅、换手率与大单
// 确认依次并入。即时数据中不存在的行业不会出现在结果里；缺失的周期
// 或富集值一律补 0.0。
func Merge(datasets map[Period]PeriodDataset, turnover map[string]float64, bigDealBuys map[string]struct{}) []IndustryRecord {
	base, ok := datasets[PeriodNow]
	if !ok || len(base) == 0 {
		return nil
	}

	records := make([]IndustryRecord, 0, len(base))
	for name, row := range base {
		rec := IndustryRecord{
			Industry:        name,
			Index:           row.Index,
			ChangePct:       row.ChangePct,
			NetInflow:       row.NetInflow,
			Inflow:          row.Inflow,
			LeadingStock:    row.LeadingStock,
			LeadingStockPct: row.LeadingStockPct,
		}

		for _, p := range TrailingPeriods {
			ds, ok := datasets[p]
			if !ok {
				continue
			}
			tr, ok := ds[name]
			if !ok {
				continue
			}
			switch p {
			case Period3D:
				rec.NetInflow3D = tr.NetInflow
				rec.ChangePct3D = tr.StageChangePct
			case Period5D:
				rec.NetInflow5D = tr.NetInflow
				rec.ChangePct5D = tr.StageChangePct
			case Period10D:
				rec.NetInflow10D = tr.NetInflow
				rec.ChangePct10D = tr.StageChangePct
			case Period20D:
				rec.NetInflow20D = tr.NetInflow
				rec.ChangePct20D = tr.StageChangePct
			}
		}

		if turnover != nil {
			rec.TurnoverRate = turnover[name]
		}

		if bigDealBuys != nil {
			_, rec.BigDealConfirmed = bigDealBuys[rec.LeadingStock]
		}

		records = append(records, rec)
	}

	return records
}
