// Copyright 2025 The Choreoform Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"github.com/choreoform/choreoform/app"
	"github.com/choreoform/choreoform/run/editor"
	"github.com/choreoform/choreoform/run/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"net/http"
	"time"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

type Server interface {
	Handler() http.Handler
	// ListenAndServe serves until the context is cancelled.
	ListenAndServe(ctx context.Context) error
}

type nativeServer struct {
	fnd       app.Foundation
	address   string
	editor    editor.Editor
	templates templates.Maker
	store     editor.Store
	router    chi.Router
}

func CreateServer(
	fnd app.Foundation,
	address string,
	ed editor.Editor,
	templatesMaker templates.Maker,
	store editor.Store,
) Server {
	s := &nativeServer{
		fnd:       fnd,
		address:   address,
		editor:    ed,
		templates: templatesMaker,
		store:     store,
	}
	s.router = s.routes()
	return s
}

func (s *nativeServer) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logging)

	r.Get("/healthz", s.healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/templates", s.listTemplates)
		r.Post("/render", s.render)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.createSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getSession)
				r.Delete("/", s.deleteSession)
				r.Post("/actions", s.applyAction)
				r.Put("/buffer", s.setBuffer)
				r.Post("/suggestions", s.suggest)
				r.Post("/suggestions/apply", s.applySuggestion)
				r.Post("/validate", s.validate)
				r.Get("/download", s.download)
			})
		})
	})
	return r
}

func (s *nativeServer) Handler() http.Handler {
	return s.router
}

func (s *nativeServer) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.fnd.Logger().Errorf("Server shutdown failed: %v", err)
		}
	}()

	s.fnd.Logger().Infof("Listening on %s", s.address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server failed")
	}
	s.fnd.Logger().Infof("Server stopped, %d sessions discarded", s.store.Len())
	return nil
}

func (s *nativeServer) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.fnd.Logger().Infof("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
