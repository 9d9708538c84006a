package controllers

import (
	"github.com/go-playground/validator/v10"

	"github.com/scholaria/scholaria-backend/src/config"
	"github.com/scholaria/scholaria-backend/src/connections"
	"github.com/scholaria/scholaria-backend/src/realtime"
)

var (
	validate = validator.New()

	connManager *connections.Manager
	hub         *realtime.Hub
	cfg         *config.Config
)

// Setup wires the shared collaborators into the handler package. Must be
// called once before routes are registered.
func Setup(manager *connections.Manager, h *realtime.Hub, c *config.Config) {
	connManager = manager
	hub = h
	cfg = c
}
