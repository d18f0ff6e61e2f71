package ledsequencer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/clambin/ledsequencer/internal/sequencer"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func routes(mux *http.ServeMux, s *sequencer.Sequencer) {
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /status", handleStatus(s))
}

func handleStatus(s *sequencer.Sequencer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.Status()); err != nil {
			http.Error(w, "failed to encode status: "+err.Error(), http.StatusInternalServerError)
		}
	})
}

func runHTTPServer(ctx context.Context, addr string, h http.Handler, g *errgroup.Group, logger *log.Entry) {
	s := &http.Server{Addr: addr, Handler: h}
	g.Go(func() error {
		err := s.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		if err != nil {
			logger.WithError(err).Error("server failed to start")
		}
		return err
	})
	g.Go(func() error {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := s.Shutdown(stopCtx)
		if err != nil {
			logger.WithError(err).Error("server failed to stop")
		}
		return err
	})
}
