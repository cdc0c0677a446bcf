package router

import "github.com/gofiber/fiber/v2"

// ServerRouter registers a route table on an app.
type ServerRouter interface {
	BuildRoutes(router *fiber.App) error
}
