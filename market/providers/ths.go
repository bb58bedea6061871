// Package providers 实现行业资金流数据源客户端
package providers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"flowquant/flow"
)

const (
	thsReferer   = "http://data.10jqka.com.cn/"
	thsUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// 分页抓取上限，页面实际页数超过时截断
	thsMaxFlowPages    = 20
	thsMaxBigDealPages = 10
)

// 各周期对应的同花顺行业资金流排行榜路径段
var thsPeriodBoards = map[flow.Period]string{
	flow.PeriodNow: "",
	flow.Period3D:  "board/3/",
	flow.Period5D:  "board/5/",
	flow.Period10D: "board/10/",
	flow.Period20D: "board/20/",
}

// THSProvider 同花顺数据中心客户端。页面为GBK编码的HTML表格。
type THSProvider struct {
	client *http.Client
}

// NewTHSProvider 创建同花顺客户端
func NewTHSProvider() *THSProvider {
	return &THSProvider{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchIndustryFlow 抓取单个周期的行业资金流排行
func (tp *THSProvider) FetchIndustryFlow(ctx context.Context, period flow.Period) (flow.PeriodDataset, error) {
	board, ok := thsPeriodBoards[period]
	if !ok {
		return nil, fmt.Errorf("未知周期: %s", period)
	}

	dataset := make(flow.PeriodDataset)
	for page := 1; page <= thsMaxFlowPages; page++ {
		url := fmt.Sprintf("http://data.10jqka.com.cn/funds/hyzjl/%sfield/tradezdf/order/desc/page/%d/free/1/", board, page)
		doc, err := tp.fetchDocument(ctx, url)
		if err != nil {
			return nil, err
		}

		rows := parseFlowTable(doc, period)
		if len(rows) == 0 {
			break
		}
		for _, row := range rows {
			dataset[row.Industry] = row
		}

		if page >= parsePageCount(doc) {
			break
		}
	}

	if len(dataset) == 0 {
		return nil, fmt.Errorf("周期 %s 未解析到任何行业数据", period)
	}
	return dataset, nil
}

// FetchBigDealBuys 抓取大单追踪页，返回出现买入大单的股票简称集合
func (tp *THSProvider) FetchBigDealBuys(ctx context.Context) (map[string]struct{}, error) {
	buys := make(map[string]struct{})
	for page := 1; page <= thsMaxBigDealPages; page++ {
		url := fmt.Sprintf("http://data.10jqka.com.cn/funds/ddzz/order/asc/page/%d/free/1/", page)
		doc, err := tp.fetchDocument(ctx, url)
		if err != nil {
			return nil, err
		}

		names := parseBigDealBuys(doc)
		if len(names) == 0 {
			break
		}
		for name := range names {
			buys[name] = struct{}{}
		}

		if page >= parsePageCount(doc) {
			break
		}
	}
	return buys, nil
}

func (tp *THSProvider) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Referer", thsReferer)
	req.Header.Set("User-Agent", thsUserAgent)

	resp, err := tp.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("同花顺接口返回 %s", resp.Status)
	}

	utf8Reader := transform.NewReader(resp.Body, simplifiedchinese.GBK.NewDecoder())
	return goquery.NewDocumentFromReader(utf8Reader)
}

// parseFlowTable 解析行业资金流表格。即时周期与阶段排行的列布局不同：
// 即时为 序号/行业/行业指数/行业-涨跌幅/流入资金/流出资金/净额/公司家数/领涨股/领涨股-涨跌幅，
// 阶段为 序号/行业/公司家数/行业指数/阶段涨跌幅/流入资金/流出资金/净额/领涨股/领涨股-涨跌幅。
func parseFlowTable(doc *goquery.Document, period flow.Period) []flow.PeriodRow {
	var rows []flow.PeriodRow
	doc.Find("table tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td").Map(func(_ int, td *goquery.Selection) string {
			return strings.TrimSpace(td.Text())
		})
		if len(cells) < 10 {
			return
		}

		row := flow.PeriodRow{Industry: cells[1]}
		if period == flow.PeriodNow {
			row.Index = flow.ParseAmount(cells[2], flow.UnitYi)
			row.ChangePct = flow.ParsePercent(cells[3])
			row.Inflow = flow.ParseAmount(cells[4], flow.UnitYi)
			row.Outflow = flow.ParseAmount(cells[5], flow.UnitYi)
			row.NetInflow = flow.ParseAmount(cells[6], flow.UnitYi)
			row.LeadingStock = cells[8]
			row.LeadingStockPct = flow.ParsePercent(cells[9])
		} else {
			row.Index = flow.ParseAmount(cells[3], flow.UnitYi)
			row.StageChangePct = flow.ParsePercent(cells[4])
			row.Inflow = flow.ParseAmount(cells[5], flow.UnitYi)
			row.Outflow = flow.ParseAmount(cells[6], flow.UnitYi)
			row.NetInflow = flow.ParseAmount(cells[7], flow.UnitYi)
			row.LeadingStock = cells[8]
			row.LeadingStockPct = flow.ParsePercent(cells[9])
		}

		if row.Industry != "" {
			rows = append(rows, row)
		}
	})
	return rows
}

// parseBigDealBuys 从大单追踪表格中取出大单性质含"买入"的股票简称
func parseBigDealBuys(doc *goquery.Document) map[string]struct{} {
	buys := make(map[string]struct{})
	doc.Find("table tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td").Map(func(_ int, td *goquery.Selection) string {
			return strings.TrimSpace(td.Text())
		})
		// 成交时间/股票代码/股票简称/成交价格/成交量/成交额/大单性质/...
		if len(cells) < 7 {
			return
		}
		if strings.Contains(cells[6], "买入") && cells[2] != "" {
			buys[cells[2]] = struct{}{}
		}
	})
	return buys
}

// parsePageCount 从分页信息"当前页/总页数"解析总页数，解析不到视为单页
func parsePageCount(doc *goquery.Document) int {
	info := strings.TrimSpace(doc.Find("span.page_info").First().Text())
	parts := strings.Split(info, "/")
	if len(parts) != 2 {
		return 1
	}
	total, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || total < 1 {
		return 1
	}
	return total
}
