package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/projectpulse/pulseauth/internal/config"
	"github.com/projectpulse/pulseauth/server"
	"github.com/projectpulse/pulseauth/users"
	"github.com/projectpulse/pulseauth/users/postgres"
	fakeuserrepo "github.com/projectpulse/pulseauth/users/repofake"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running server: %s\n", err)
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	userRepo, cleanup, err := buildUserRepo(c)
	if err != nil {
		return err
	}
	defer cleanup()

	srv, err := server.New(c, userRepo)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

// buildUserRepo picks the Postgres store when DATABASE_URL is set and
// falls back to the in-memory store otherwise (data lost on restart).
func buildUserRepo(c config.Config) (users.UserRepo, func(), error) {
	databaseURL := c.GetDatabaseURL()
	if databaseURL == "" {
		log.Printf("DATABASE_URL not set, using in-memory user store\n")
		return fakeuserrepo.NewFakeUserRepo(), func() {}, nil
	}

	db, err := postgres.Open(databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to user store: %w", err)
	}
	return postgres.New(db), func() { _ = db.Close() }, nil
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
