// Package main library catalog API.
//
// @title           Library Catalog API
// @version         1.0
// @description     book catalog service (books, borrowing, ratings, reports).
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"librarycatalog/app/echoServer"
	bookctrl "librarycatalog/app/echoServer/controller/book"
	reportctrl "librarycatalog/app/echoServer/controller/report"
	"librarycatalog/app/echoServer/validation"
	"librarycatalog/config"
	bookrepo "librarycatalog/repository/book"
	reportrepo "librarycatalog/repository/report"
	booksvc "librarycatalog/service/book"
	reportsvc "librarycatalog/service/report"
	"librarycatalog/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: mongo client, pinged before we serve
	db, err := database.New(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}

	books := db.Books()

	// repos
	br := bookrepo.New(books)
	rr := reportrepo.New(books)

	// services
	bs := booksvc.New(br)
	rs := reportsvc.New(rr)

	// controllers
	v := validator.New()
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	reportC := &reportctrl.Controller{Svc: rs, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Book:   bookC,
		Report: reportC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	go func() {
		log.Info("starting server", "port", port, "env", cfg.Env)
		if err := e.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "err", err)
	}
	if err := db.Close(shutdownCtx); err != nil {
		log.Error("db close", "err", err)
	}
}
