// main.go
//
// A scalable, high performance drop-in replacement for the campus inventory nodejs service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of assetdb.
// assetdb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// assetdb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with assetdb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"

	"github.com/campuskit/assetdb/internal/config"
	"github.com/campuskit/assetdb/internal/database"
	"github.com/campuskit/assetdb/internal/handlers"
	"github.com/campuskit/assetdb/internal/middleware"

	_ "github.com/campuskit/assetdb/docs" // Swagger docs
)

// @title AssetDB API
// @version 1.0.0
// @description Campus inventory tracking service
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/campuskit/assetdb
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the initial admin account
	if err := database.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		DisableStartupMessage: false,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("assetdb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Create handlers
	healthHandler := &handlers.HealthHandler{DB: db, Cfg: cfg}
	userHandler := &handlers.UserHandler{DB: db, Cfg: cfg}
	catalogHandler := &handlers.CatalogHandler{DB: db}
	locationHandler := &handlers.LocationHandler{DB: db}
	itemHandler := &handlers.ItemHandler{DB: db}
	reportHandler := &handlers.ReportHandler{DB: db}
	activityHandler := &handlers.ActivityHandler{DB: db}

	app.Get("/health", healthHandler.Check)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.APIVersion())

	authUser := middleware.AuthUser(cfg)
	authAdmin := middleware.AuthAdmin(cfg)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", userHandler.Login)
	auth.Post("/refresh", userHandler.Refresh)
	auth.Post("/register", authAdmin, userHandler.Register)
	auth.Post("/logout", authUser, userHandler.Logout)
	auth.Put("/password", authUser, userHandler.ChangePassword)
	auth.Get("/me", authUser, userHandler.Me)

	// User management (admin)
	api.Get("/users", authAdmin, userHandler.List)
	api.Put("/users/:id", authUser, userHandler.Update)
	api.Delete("/users/:id", authAdmin, userHandler.Delete)

	// Catalog routes (public GET, admin mutations)
	api.Get("/categories", catalogHandler.ListCategories)
	api.Get("/categories/:id", catalogHandler.GetCategory)
	api.Post("/categories", authAdmin, catalogHandler.CreateCategory)
	api.Put("/categories/:id", authAdmin, catalogHandler.UpdateCategory)
	api.Delete("/categories/:id", authAdmin, catalogHandler.DeleteCategory)

	api.Get("/sub-categories", catalogHandler.ListSubCategories)
	api.Get("/sub-categories/:id", catalogHandler.GetSubCategory)
	api.Post("/sub-categories", authAdmin, catalogHandler.CreateSubCategory)
	api.Put("/sub-categories/:id", authAdmin, catalogHandler.UpdateSubCategory)
	api.Delete("/sub-categories/:id", authAdmin, catalogHandler.DeleteSubCategory)

	// Location routes
	api.Get("/floors", locationHandler.ListFloors)
	api.Post("/floors", authAdmin, locationHandler.CreateFloor)
	api.Put("/floors/:id", authAdmin, locationHandler.UpdateFloor)
	api.Delete("/floors/:id", authAdmin, locationHandler.DeleteFloor)

	api.Get("/room-types", locationHandler.ListRoomTypes)
	api.Post("/room-types", authAdmin, locationHandler.CreateRoomType)
	api.Put("/room-types/:id", authAdmin, locationHandler.UpdateRoomType)
	api.Delete("/room-types/:id", authAdmin, locationHandler.DeleteRoomType)

	api.Get("/rooms", locationHandler.ListRooms)
	api.Post("/rooms", authAdmin, locationHandler.CreateRoom)
	api.Put("/rooms/:id", authAdmin, locationHandler.UpdateRoom)
	api.Delete("/rooms/:id", authAdmin, locationHandler.DeleteRoom)

	// Item routes. Static segments before the :id routes so /items/export
	// and /items/sources resolve correctly.
	api.Get("/items/sources", itemHandler.Sources)
	api.Get("/items/statuses", itemHandler.Statuses)
	api.Get("/items/export", authUser, itemHandler.Export)
	api.Post("/items/bulk/delete", authAdmin, itemHandler.BulkDelete)
	api.Post("/items/bulk/move", authAdmin, itemHandler.BulkMove)
	api.Post("/items/bulk/status", authAdmin, itemHandler.BulkStatus)
	api.Get("/items/instances", authUser, itemHandler.Instances)
	api.Get("/items", authUser, itemHandler.List)
	api.Post("/items", authAdmin, itemHandler.Create)
	api.Get("/items/:id", authUser, itemHandler.Get)
	api.Get("/items/:id/similar", authUser, itemHandler.Similar)
	api.Put("/items/:id", authAdmin, itemHandler.Update)
	api.Put("/items/:id/move", authAdmin, itemHandler.Move)
	api.Put("/items/:id/status", authAdmin, itemHandler.ChangeStatus)
	api.Put("/items/:id/sub-category", authAdmin, itemHandler.MoveSubCategory)
	api.Delete("/items/:id", authAdmin, itemHandler.Delete)

	// Reporting routes
	api.Get("/reports/stats", authUser, reportHandler.Stats)
	api.Get("/reports/categories", authUser, reportHandler.CategoryRollup)
	api.Get("/reports/categories/:id/status", authUser, reportHandler.CategoryStatusStats)
	api.Get("/reports/categories/:id/acquisition", authUser, reportHandler.CategoryAcquisitionStats)
	api.Get("/reports/rooms", authUser, reportHandler.RoomRollup)
	api.Get("/reports/rooms/:id/status", authUser, reportHandler.RoomStatusStats)
	api.Get("/reports/rooms/:id/details", authUser, reportHandler.RoomItemDetails)
	api.Get("/reports/common-items", authUser, reportHandler.CommonItems)

	// Activity ledger routes
	api.Get("/activity", authAdmin, activityHandler.Query)
	api.Get("/activity/recent", authAdmin, activityHandler.Recent)
	api.Get("/activity/:entityType/:entityId", authUser, activityHandler.Entity)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}
