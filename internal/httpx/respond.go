package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type errorBody struct {
	Kind  Kind   `json:"kind"`
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError answers every failure with 400; clients tell them apart by kind.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, http.StatusBadRequest, errorBody{Kind: KindOf(err), Error: err.Error()})
}

// Recover converts a handler panic into a 400 instead of dropping the connection.
func Recover(onPanic func(v any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				if onPanic != nil {
					onPanic(rec)
				}
				WriteError(w, Internal(fmt.Errorf("%v", rec)))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
