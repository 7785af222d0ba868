package v1

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/zintix-labs/randlab"
	"github.com/zintix-labs/randlab/errs"
	"github.com/zintix-labs/randlab/server/httperr"
	"github.com/zintix-labs/randlab/server/svrcfg"
	"github.com/zintix-labs/randlab/stats"
)

type CheckHandler struct {
	Cfg *svrcfg.SvrCfg
}

func NewCheckHandler(cfg *svrcfg.SvrCfg) (*CheckHandler, error) {
	if cfg == nil {
		return nil, errs.NewFatal("svrcfg is required")
	}
	return &CheckHandler{Cfg: cfg}, nil
}

// Check 執行一次均勻性檢定並回傳統計報表。
//
// GET  /v1/check?bound=100&draws=100000&workers=4&seed=42
// POST /v1/check  {"bound":100,"draws":100000,"workers":4,"seed":42}
func (ch *CheckHandler) Check(w http.ResponseWriter, q *http.Request) {
	// 內部結構 不影響外部 也不被外部使用
	type CheckRequestBody struct {
		Bound   int64   `json:"bound"`
		Draws   int     `json:"draws"`
		Workers int     `json:"workers"`
		Seed    *uint64 `json:"seed,omitempty"`
	}
	// 內部結構 不影響外部 也不被外部使用
	type CheckResponse struct {
		Stats    *stats.UniformReport `json:"stats"`
		UsedTime int64                `json:"used_ms"`
	}
	// ---
	req := new(CheckRequestBody)
	if q.Method != http.MethodGet && q.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if q.Method == http.MethodGet {
		// bound
		if s := q.URL.Query().Get("bound"); s != "" {
			u, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("bound must be int64"))
				return
			}
			req.Bound = u
		} else {
			httperr.Errs(w, errs.NewWarn("bound is required"))
			return
		}

		// draws
		if s := q.URL.Query().Get("draws"); s != "" {
			u, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("draws must be integer"))
				return
			}
			req.Draws = int(u)
		} else {
			httperr.Errs(w, errs.NewWarn("draws is required"))
			return
		}

		// workers
		if s := q.URL.Query().Get("workers"); s != "" {
			u, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("workers must be integer"))
				return
			}
			req.Workers = int(u)
		}

		// seed
		if s := q.URL.Query().Get("seed"); s != "" {
			u, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				httperr.Errs(w, errs.NewWarn("seed must be uint64"))
				return
			}
			v := u
			req.Seed = &v
		}
	}
	if q.Method == http.MethodPost {
		if err := json.NewDecoder(q.Body).Decode(req); err != nil {
			httperr.Errs(w, errs.NewWarn("invalid json:"+err.Error()))
			return
		}
	}
	// 業務檢驗
	if req.Bound <= 0 {
		httperr.Errs(w, errs.NewWarn("bound must be positive"))
		return
	}
	if req.Workers == 0 {
		req.Workers = 1
	}
	if req.Workers < 1 {
		httperr.Errs(w, errs.NewWarn("workers must be positive"))
		return
	}
	// 以除法檢核，避免 draws*workers 溢位繞過上限
	if req.Draws < 1 || req.Draws > ch.Cfg.MaxDraws/req.Workers {
		httperr.Errs(w, errs.Warnf("draws*workers must be between 1 and %d", ch.Cfg.MaxDraws))
		return
	}

	var runner *randlab.Runner
	if req.Seed != nil {
		runner = randlab.NewRunner(ch.Cfg.Factory, *req.Seed)
	} else {
		r, err := randlab.NewRunnerAuto(ch.Cfg.Factory)
		if err != nil {
			httperr.Errs(w, errs.Wrap(err, "seed generate failed"))
			return
		}
		runner = r
	}

	report, used, err := runner.RunUniformMP(req.Bound, req.Draws, req.Workers, false)
	if err != nil {
		// 這裡的錯誤來自 randlab 尊重錯誤分級
		httperr.Errs(w, errs.Wrap(err, "uniform check failed"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(CheckResponse{Stats: report, UsedTime: used.Milliseconds()})
}
