package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

func main() {
	app, cleanup, err := InitializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer cleanup()

	// Room sequencer runs for the lifetime of the process.
	go app.Hub.Run()

	r := mux.NewRouter()
	r.HandleFunc("/ws", app.WS.HandleConnection).Methods("GET")
	r.HandleFunc("/api/servers", app.API.Servers).Methods("GET")
	r.HandleFunc("/api/check_nickname", app.API.CheckNickname).Methods("POST")
	r.HandleFunc("/api/history", app.API.History).Methods("GET")
	r.HandleFunc("/login", app.API.Login).Methods("POST")
	r.HandleFunc("/register", app.API.Register).Methods("POST")
	r.HandleFunc("/clear_history", app.API.ClearHistory).Methods("POST")

	log.Printf("Server starting on %s", app.Config.HTTPAddr)
	if err := http.ListenAndServe(app.Config.HTTPAddr, r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
