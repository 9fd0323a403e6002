package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/aanandhisonduri/BigBrain/internal/adapter/utils"
	"github.com/aanandhisonduri/BigBrain/internal/config"
	"github.com/aanandhisonduri/BigBrain/internal/handlers"
	"github.com/aanandhisonduri/BigBrain/internal/middleware"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
)

var (
	server  *http.Server
	_logger *logging.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string, h *handlers.Handler) {
	_logger = logging.NewLogger("Server")

	r := utils.GetRouter()

	r.Router.Get("/health", middleware.Wrap(h.HealthHandler))

	r.Router.Post("/notes", middleware.Wrap(h.CreateNote))
	r.Router.Get("/notes", middleware.Wrap(h.ListNotes))
	r.Router.Get("/notes/{id}", middleware.Wrap(h.GetNote))
	r.Router.Delete("/notes/{id}", middleware.Wrap(h.DeleteNote))

	r.Router.Post("/documents", middleware.Wrap(h.CreateDocument))
	r.Router.Get("/documents", middleware.Wrap(h.ListDocuments))
	r.Router.Get("/documents/{id}", middleware.Wrap(h.GetDocument))
	r.Router.Delete("/documents/{id}", middleware.Wrap(h.DeleteDocument))
	r.Router.Post("/documents/{id}/ask", middleware.Wrap(h.AskQuestion))
	r.Router.Get("/documents/{id}/chats", middleware.Wrap(h.ListChats))

	r.Router.Post("/upload-url", middleware.Wrap(h.GenerateUploadURL))
	r.Router.Get("/search", middleware.Wrap(h.Search))

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully", "error", err)
		}

		// drain the workers before cutting off their backing services
		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully shut down")
	case <-ctx.Done():
		_logger.Info("Force shut down")
		os.Exit(1)
	}
}
