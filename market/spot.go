// Package market 提供个股行情抓取
package market

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"flowquant/parallel"
)

// Spot 单只股票的实时快照
type Spot struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Price     float64   `json:"price"`
	Volume    int64     `json:"volume"`
	Timestamp time.Time `json:"timestamp"`
}

// FetchSpot 从新浪行情接口抓取单只股票的实时快照
func FetchSpot(symbol string) (*Spot, error) {
	url := fmt.Sprintf("http://hq.sinajs.cn/list=%s", symbol)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Referer", "http://finance.sina.com.cn")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	utf8Reader := transform.NewReader(resp.Body, simplifiedchinese.GBK.NewDecoder())
	body, err := io.ReadAll(utf8Reader)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(string(body), "\"")
	if len(parts) < 2 {
		return nil, fmt.Errorf("新浪接口响应格式异常")
	}

	data := strings.Split(parts[1], ",")
	if len(data) < 32 {
		return nil, fmt.Errorf("新浪接口字段数不足: %d", len(data))
	}

	open, _ := strconv.ParseFloat(data[1], 64)
	curr, _ := strconv.ParseFloat(data[3], 64)
	high, _ := strconv.ParseFloat(data[4], 64)
	low, _ := strconv.ParseFloat(data[5], 64)
	volume, _ := strconv.ParseInt(data[8], 10, 64)
	timestamp, _ := time.ParseInLocation("2006-01-02 15:04:05", data[30]+" "+data[31], time.Local)

	return &Spot{
		Symbol:    symbol,
		Name:      data[0],
		Open:      open,
		High:      high,
		Low:       low,
		Price:     curr,
		Volume:    volume,
		Timestamp: timestamp,
	}, nil
}

// FetchSpotBatch 并发抓取一批股票的实时快照，单只失败不影响其余。
// 返回结果为完成顺序，数量为成功抓取的只数。
func FetchSpotBatch(symbols []string, maxWorkers int) []Spot {
	zap.S().Infow("开始并发抓取个股快照", "count", len(symbols), "workers", maxWorkers)

	results := parallel.Map(symbols, func(symbol string) (Spot, error) {
		spot, err := FetchSpot(symbol)
		if err != nil {
			return Spot{}, err
		}
		return *spot, nil
	}, maxWorkers)

	zap.S().Infow("个股快照抓取完成", "ok", len(results), "total", len(symbols))
	return results
}
