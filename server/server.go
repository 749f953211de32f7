package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/projectpulse/pulseauth/auth"
	"github.com/projectpulse/pulseauth/internal/config"
	"github.com/projectpulse/pulseauth/token"
	"github.com/projectpulse/pulseauth/token/keys"
	"github.com/projectpulse/pulseauth/users"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	sessions *auth.SessionService
	userRepo users.UserRepo
	logger   zerolog.Logger
}

func New(cfg config.Config, userRepo users.UserRepo) (*Server, error) {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "pulseauth").Logger()

	keyPair, err := keys.LoadOrGenerate(cfg.GetKeysDirectory(), logger)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to obtain signing keys: %w", err)
	}

	codec, err := token.NewCodec(keys.NewKeyPairSigner(keyPair), cfg.GetIssuer(), cfg.GetAudience(),
		token.WithTTL(cfg.GetTokenTTL()),
		token.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create token codec: %w", err)
	}

	sessions, err := auth.NewSessionService(userRepo, codec, auth.WithServiceLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create session service: %w", err)
	}

	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		sessions: sessions,
		userRepo: userRepo,
		logger:   logger,
	}
	s.env = cfg.GetEnv()

	// Bootstrap: ensure an admin user exists on an empty store
	if err := s.InitialiseSystem(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("[Server New] failed to initialise the system: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	fmt.Printf("[%-19s] %s\n", displayMethod, path)
}
