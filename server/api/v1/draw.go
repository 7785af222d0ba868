package v1

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/zintix-labs/randlab/core"
	"github.com/zintix-labs/randlab/corefmt"
	"github.com/zintix-labs/randlab/errs"
	"github.com/zintix-labs/randlab/sampler"
	"github.com/zintix-labs/randlab/server/httperr"
	"github.com/zintix-labs/randlab/server/svrcfg"
)

type DrawHandler struct {
	Cfg *svrcfg.SvrCfg
}

func NewDrawHandler(cfg *svrcfg.SvrCfg) (*DrawHandler, error) {
	if cfg == nil {
		return nil, errs.NewFatal("svrcfg is required")
	}
	return &DrawHandler{Cfg: cfg}, nil
}

// querySeed 解析 seed 參數；未提供時以平台熵源派生（回應中會帶回實際使用的 seed）。
func querySeed(q *http.Request) (uint64, error) {
	if s := q.URL.Query().Get("seed"); s != "" {
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, errs.NewWarn("seed must be uint64")
		}
		return u, nil
	}
	g := core.NewPCG32() // 熵源播種的一次性實例
	return g.Uint64(), nil
}

func queryIntDefault(q *http.Request, key string, def int) (int, error) {
	s := q.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}
	u, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewWarn(key + " must be integer")
	}
	return int(u), nil
}

// stateGenerator 以 state token（base64url 的 blob frame 快照）還原產生器。
func (dh *DrawHandler) stateGenerator(token string) (core.PRNG, error) {
	raw, err := corefmt.DecodeBase64URL(token)
	if err != nil {
		return nil, errs.NewWarn("state must be base64url")
	}
	snap, err := corefmt.DecodeBlobFrame(raw)
	if err != nil {
		return nil, err
	}
	g := dh.Cfg.Factory.New(0)
	if err := g.Restore(snap); err != nil {
		return nil, err
	}
	return g, nil
}

// Draw 產出一批原始/有界亂數。
//
// GET /v1/draw?width=32|64|128&n=10&seed=42&bound=100&state=...
//   - width 決定輸出寬度；預設 64。
//   - bound > 0 時走無偏 bounded 取樣（width 32 → Int31N、64 → Int63N）。
//   - 64/128-bit 值以字串回傳，避免 JSON number 精度遺失。
//   - state 給定時以 /v1/snapshot 發出的 token 還原產生器續抽，
//     此時忽略 seed（回應中 seed 欄位省略）。
func (dh *DrawHandler) Draw(w http.ResponseWriter, q *http.Request) {
	type DrawResponse struct {
		Seed   uint64   `json:"seed,omitempty"`
		Width  int      `json:"width"`
		Bound  int64    `json:"bound,omitempty"`
		Values []string `json:"values"`
	}
	// ---
	var g core.PRNG
	var seed uint64
	if tok := q.URL.Query().Get("state"); tok != "" {
		sg, err := dh.stateGenerator(tok)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		g = sg
	} else {
		s, err := querySeed(q)
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		seed = s
		g = dh.Cfg.Factory.New(seed)
	}
	width, err := queryIntDefault(q, "width", 64)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	n, err := queryIntDefault(q, "n", 1)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	if n < 1 || n > dh.Cfg.MaxDraws {
		httperr.Errs(w, errs.Warnf("n must be between 1 and %d", dh.Cfg.MaxDraws))
		return
	}
	var bound int64
	if s := q.URL.Query().Get("bound"); s != "" {
		u, perr := strconv.ParseInt(s, 10, 64)
		if perr != nil || u <= 0 {
			httperr.Errs(w, errs.NewWarn("bound must be positive int64"))
			return
		}
		bound = u
	}

	resp := DrawResponse{Seed: seed, Width: width, Bound: bound, Values: make([]string, 0, n)}
	switch width {
	case 32:
		if bound > int64(1)<<31-1 {
			httperr.Errs(w, errs.NewWarn("bound exceeds 31-bit range"))
			return
		}
		for i := 0; i < n; i++ {
			if bound > 0 {
				resp.Values = append(resp.Values, strconv.FormatInt(int64(g.Int31N(int32(bound))), 10))
			} else {
				resp.Values = append(resp.Values, strconv.FormatUint(uint64(g.Uint32()), 10))
			}
		}
	case 64:
		for i := 0; i < n; i++ {
			if bound > 0 {
				resp.Values = append(resp.Values, strconv.FormatInt(g.Int63N(bound), 10))
			} else {
				resp.Values = append(resp.Values, strconv.FormatUint(g.Uint64(), 10))
			}
		}
	case 128:
		if bound > 0 {
			httperr.Errs(w, errs.NewWarn("bound is not supported for width 128"))
			return
		}
		for i := 0; i < n; i++ {
			resp.Values = append(resp.Values, g.Uint128().String())
		}
	default:
		httperr.Errs(w, errs.NewWarn("width must be 32, 64 or 128"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Perm 產出 [0,n) 的均勻隨機排列。
//
// GET /v1/perm?n=52&seed=42
func (dh *DrawHandler) Perm(w http.ResponseWriter, q *http.Request) {
	type PermResponse struct {
		Seed uint64 `json:"seed"`
		N    int    `json:"n"`
		Perm []int  `json:"perm"`
	}
	// ---
	seed, err := querySeed(q)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	n, err := queryIntDefault(q, "n", 0)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	if n < 0 || n > dh.Cfg.MaxPerm {
		httperr.Errs(w, errs.Warnf("n must be between 0 and %d", dh.Cfg.MaxPerm))
		return
	}

	g := dh.Cfg.Factory.New(seed)
	resp := PermResponse{Seed: seed, N: n, Perm: sampler.Permutation(g, n)}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Bytes 產出一段亂數 byte 流。
//
// GET /v1/bytes?n=32&seed=42&enc=base64|hex
func (dh *DrawHandler) Bytes(w http.ResponseWriter, q *http.Request) {
	type BytesResponse struct {
		Seed     uint64 `json:"seed"`
		N        int    `json:"n"`
		Encoding string `json:"encoding"`
		Data     string `json:"data"`
	}
	// ---
	seed, err := querySeed(q)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	n, err := queryIntDefault(q, "n", 32)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	if n < 1 || n > dh.Cfg.MaxDraws {
		httperr.Errs(w, errs.Warnf("n must be between 1 and %d", dh.Cfg.MaxDraws))
		return
	}
	enc := q.URL.Query().Get("enc")
	if enc == "" {
		enc = "base64"
	}

	g := dh.Cfg.Factory.New(seed)
	buf := make([]byte, n)
	_, _ = g.Read(buf)

	resp := BytesResponse{Seed: seed, N: n, Encoding: enc}
	switch enc {
	case "base64":
		resp.Data = corefmt.EncodeBase64(buf)
	case "hex":
		resp.Data = corefmt.EncodeHex(buf)
	default:
		httperr.Errs(w, errs.NewWarn("enc must be base64 or hex"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Snapshot 回傳指定 seed 初始化後的產生器狀態快照。
//
// GET /v1/snapshot?seed=42
//   - snapshot：原始快照 bytes 的 base64，給 binary 通道的消費者。
//   - state_token：blob frame 包裝後的 base64url，可直接回填 /v1/draw?state=。
func (dh *DrawHandler) Snapshot(w http.ResponseWriter, q *http.Request) {
	type SnapshotResponse struct {
		Seed       uint64 `json:"seed"`
		Snapshot   string `json:"snapshot"`
		StateToken string `json:"state_token"`
	}
	// ---
	seed, err := querySeed(q)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	g := dh.Cfg.Factory.New(seed)
	snap, err := g.Snapshot()
	if err != nil {
		httperr.Errs(w, errs.Wrap(err, "snapshot failed"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(SnapshotResponse{
		Seed:       seed,
		Snapshot:   corefmt.EncodeBase64(snap),
		StateToken: corefmt.EncodeBase64URL(corefmt.EncodeBlobFrame(snap)),
	})
}
