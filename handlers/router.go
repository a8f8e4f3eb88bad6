package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/virtualsim/relay-backend/config"
	"github.com/virtualsim/relay-backend/middleware"
	"github.com/virtualsim/relay-backend/responses"
	"github.com/virtualsim/relay-backend/utils"
)

func NewRouter(relay *Relay, cfg *config.Config) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", relay.Status).Methods("GET")
	r.HandleFunc("/api/server", ServerInfo(cfg)).Methods("GET")
	r.HandleFunc("/api/game-modes", GameModes).Methods("GET")
	r.HandleFunc("/ws", relay.WsHandler)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		utils.HandleError(w, responses.NotFoundError{Msg: "Not found."})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		utils.HandleError(w, responses.MethodNotAllowedError{Msg: "Method not allowed."})
	})

	return middleware.CORS(r)
}
