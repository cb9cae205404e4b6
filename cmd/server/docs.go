package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Betsense API
// @version         0.1.0
// @description     Odds, bet history and AI-assisted betting analysis.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
