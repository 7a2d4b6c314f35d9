package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	app "github.com/okian/mergington/internal/app"
	"github.com/okian/mergington/internal/config"
	"github.com/okian/mergington/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("ACTIVITIES_ADDR", ":8080")
			_ = os.Setenv("ACTIVITIES_LOG_FORMAT", "json")
			defer func() {
				_ = os.Unsetenv("ACTIVITIES_ADDR")
				_ = os.Unsetenv("ACTIVITIES_LOG_FORMAT")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given the assembled HTTP handler", t, func() {
		convey.So(logger.Init(logger.WithOutput(io.Discard)), convey.ShouldBeNil)
		ctx := context.Background()

		svc := app.New()
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		h := newHandler(ctx, svc, logger.Get())

		get := func(target string) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
			return rec
		}

		convey.Convey("When requesting the root", func() {
			rec := get("/")

			convey.Convey("Then it redirects to the front-end", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusTemporaryRedirect)
				convey.So(rec.Header().Get("Location"), convey.ShouldEqual, "/static/index.html")
				convey.So(rec.Header().Get("X-Request-ID"), convey.ShouldNotBeEmpty)
			})
		})

		convey.Convey("When requesting each surface", func() {
			convey.Convey("Then every route is wired", func() {
				for _, path := range []string{"/static/index.html", "/activities", "/stats", "/healthz", "/openapi.yaml", "/api-docs"} {
					convey.So(get(path).Code, convey.ShouldEqual, http.StatusOK)
				}
			})
		})

		convey.Convey("When signing up through the full stack", func() {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/activities/Gym%20Class/signup?email=new@mergington.edu", nil))

			convey.Convey("Then the stats reflect the new participant", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)

				var stats map[string]interface{}
				convey.So(json.Unmarshal(get("/stats").Body.Bytes(), &stats), convey.ShouldBeNil)
				convey.So(stats["activities"], convey.ShouldEqual, float64(9))
				convey.So(stats["participants"], convey.ShouldEqual, float64(22))
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given main application components", t, func() {
		convey.Convey("When the system metrics updater's context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			convey.Convey("Then it returns", func() {
				convey.So(func() {
					startSystemMetricsUpdater(ctx, 10*time.Millisecond)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When updating system metrics directly", func() {
			convey.Convey("Then it should not panic", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
			})
		})
	})
}
