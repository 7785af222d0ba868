// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package v1

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/zintix-labs/randlab/server/svrcfg"
)

func testCfg(t *testing.T) *svrcfg.SvrCfg {
	t.Helper()
	cfg := &svrcfg.SvrCfg{}
	if err := cfg.Vaild(); err != nil {
		t.Fatalf("svrcfg: %v", err)
	}
	return cfg
}

func doGet(t *testing.T, fn http.HandlerFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

// state token 續抽：以 /v1/snapshot 的 token 還原，輸出必須與同 seed 直抽一致。
func TestDrawWithStateToken(t *testing.T) {
	dh, err := NewDrawHandler(testCfg(t))
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	rec := doGet(t, dh.Draw, "/v1/draw?seed=42&n=3&width=32")
	if rec.Code != http.StatusOK {
		t.Fatalf("seed draw: status %d body %s", rec.Code, rec.Body.String())
	}
	var seeded struct {
		Values []string `json:"values"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &seeded); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doGet(t, dh.Snapshot, "/v1/snapshot?seed=42")
	if rec.Code != http.StatusOK {
		t.Fatalf("snapshot: status %d body %s", rec.Code, rec.Body.String())
	}
	var snap struct {
		StateToken string `json:"state_token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.StateToken == "" {
		t.Fatalf("empty state token")
	}

	rec = doGet(t, dh.Draw, "/v1/draw?n=3&width=32&state="+url.QueryEscape(snap.StateToken))
	if rec.Code != http.StatusOK {
		t.Fatalf("state draw: status %d body %s", rec.Code, rec.Body.String())
	}
	var resumed struct {
		Values []string `json:"values"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resumed); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(resumed.Values) != 3 {
		t.Fatalf("resumed values: %v", resumed.Values)
	}
	for i := range seeded.Values {
		if seeded.Values[i] != resumed.Values[i] {
			t.Fatalf("value %d: seeded %s resumed %s", i, seeded.Values[i], resumed.Values[i])
		}
	}
}

func TestDrawRejectsBadStateToken(t *testing.T) {
	dh, err := NewDrawHandler(testCfg(t))
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	if rec := doGet(t, dh.Draw, "/v1/draw?state=%21%21not-a-token"); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad token: status %d", rec.Code)
	}
	// 合法 base64url、但不是合法 blob frame
	if rec := doGet(t, dh.Draw, "/v1/draw?state=AAAA"); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad frame: status %d", rec.Code)
	}
}

func TestCheckRejectsOverflowingDraws(t *testing.T) {
	ch, err := NewCheckHandler(testCfg(t))
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	// draws*workers 溢位成負數不可繞過 MaxDraws 檢核
	body := fmt.Sprintf(`{"bound":10,"draws":%d,"workers":3}`, math.MaxInt64/2)
	req := httptest.NewRequest(http.MethodPost, "/v1/check", strings.NewReader(body))
	rec := httptest.NewRecorder()
	ch.Check(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("overflowing draws: status %d body %s", rec.Code, rec.Body.String())
	}
}

func TestCheckRuns(t *testing.T) {
	ch, err := NewCheckHandler(testCfg(t))
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}

	body := `{"bound":10,"draws":2000,"workers":2,"seed":42}`
	req := httptest.NewRequest(http.MethodPost, "/v1/check", strings.NewReader(body))
	rec := httptest.NewRecorder()
	ch.Check(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("check: status %d body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Stats struct {
			Summary struct {
				Draws int `json:"Draws"`
			} `json:"Summary"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Stats.Summary.Draws != 4000 {
		t.Fatalf("draws: %d", resp.Stats.Summary.Draws)
	}
}
