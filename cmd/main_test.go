package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/carelens/predictd/internal/adapters/http/api"
	"github.com/carelens/predictd/internal/adapters/http/docs"
	app "github.com/carelens/predictd/internal/app"
	"github.com/carelens/predictd/internal/config"
)

func TestMainWiring(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("PREDICTD_ADDR", ":8088")
			_ = os.Setenv("PREDICTD_MODEL_VERSION", "v7.0.0")
			defer func() {
				_ = os.Unsetenv("PREDICTD_ADDR")
				_ = os.Unsetenv("PREDICTD_MODEL_VERSION")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8088")
				convey.So(cfg.ModelVersion, convey.ShouldEqual, "v7.0.0")
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithModelVersion("v2.0.0"),
					app.WithScoreBounds(0.1, 0.9),
					app.WithDefaultRiskWeight(0.8),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When wiring the HTTP mux", func() {
			svc := app.New()
			convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
			defer svc.Stop()

			mux := http.NewServeMux()
			apiServer := api.NewServer(svc, svc, []string{"*"})
			apiServer.Register(context.Background(), mux)
			docs.Register(context.Background(), mux, apiServer.Wrap)

			convey.Convey("Then the full route surface should respond", func() {
				for _, path := range []string{"/", "/health", "/predict", "/metrics", "/stats", "/docs", "/openapi.yaml"} {
					req := httptest.NewRequest(http.MethodGet, path, nil)
					w := httptest.NewRecorder()
					mux.ServeHTTP(w, req)
					convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				}
			})

			convey.Convey("Then every route should reject non-GET methods", func() {
				for _, path := range []string{"/", "/health", "/predict", "/metrics", "/stats", "/docs", "/openapi.yaml"} {
					req := httptest.NewRequest(http.MethodPost, path, nil)
					w := httptest.NewRecorder()
					mux.ServeHTTP(w, req)
					convey.So(w.Code, convey.ShouldEqual, http.StatusMethodNotAllowed)
				}
			})

			convey.Convey("Then docs routes should carry a request id from the shared chain", func() {
				req := httptest.NewRequest(http.MethodGet, "/docs", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				convey.So(w.Header().Get("X-Request-Id"), convey.ShouldNotBeEmpty)
			})
		})
	})
}
