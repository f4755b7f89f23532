package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/games", handler.ListGames)
	mux.HandleFunc("GET /v1/games/{gameID}", handler.GetGame)
}

func registerFavoriteRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/users/{userID}/favorites", handler.ListFavorites)
	mux.HandleFunc("PUT /v1/users/{userID}/favorites", handler.SaveFavorites)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/ingest", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunIngestionJob)))
	mux.Handle("POST /v1/internal/jobs/ingest/{sportKey}", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunIngestionJob)))
}
