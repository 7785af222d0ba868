package index

import (
	"fmt"
	"net/http"
)

// IndexHandlerFn 首頁：列出可用端點，方便肉眼巡檢。
func IndexHandlerFn(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "randlab inspection server")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "GET  /v1/draw      ?width=32|64|128&n=&seed=&bound=&state=")
	fmt.Fprintln(w, "GET  /v1/perm      ?n=&seed=")
	fmt.Fprintln(w, "GET  /v1/bytes     ?n=&seed=&enc=base64|hex")
	fmt.Fprintln(w, "GET  /v1/snapshot  ?seed=")
	fmt.Fprintln(w, "GET  /v1/check     ?bound=&draws=&workers=&seed=")
	fmt.Fprintln(w, "POST /v1/check     {bound,draws,workers,seed}")
}
