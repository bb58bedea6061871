package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"flowquant/flow"
)

// RegisterHandlers 注册API路由
func RegisterHandlers(mux *http.ServeMux, analyzer *flow.Analyzer) {
	mux.HandleFunc("/api/health", healthHandler)
	mux.HandleFunc("/api/industry/trend", trendHandler(analyzer))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// trendHandler 返回当日行业趋势结果表。缓存命中时立即返回，
// 否则触发一次完整的抓取计算（并发请求会被合并）。
func trendHandler(analyzer *flow.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		records, err := analyzer.Run(r.Context())
		if err != nil {
			if errors.Is(err, flow.ErrNoBaseDataset) {
				writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
					"error": "即时行情数据暂不可用",
				})
				return
			}
			zap.S().Errorw("行业趋势计算失败", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"count": len(records),
			"data":  records,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Warnw("响应编码失败", "error", err)
	}
}
