package api

import (
	"github.com/gorilla/mux"
)

// NewRouter はルートを設定したルーターを返します。
func NewRouter(handler *GenerationHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", handler.HandleIndex).Methods("GET")
	r.HandleFunc("/generate", handler.HandleGenerate).Methods("POST")
	r.HandleFunc("/healthz", handler.HandleHealth).Methods("GET")
	return r
}
