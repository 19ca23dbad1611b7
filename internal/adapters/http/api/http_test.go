package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/common/expfmt"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/carelens/predictd/internal/adapters/http/api"
	"github.com/carelens/predictd/internal/domain/prediction"
)

// Mock implementations for testing.
type mockDeps struct {
	result prediction.Result
	err    error
	ready  bool
	uptime time.Duration
}

func (m *mockDeps) Predict(ctx context.Context, patientID, riskFactor string) (prediction.Result, error) {
	if m.err != nil {
		return prediction.Result{}, m.err
	}
	res := m.result
	if patientID != "" {
		res.PatientID = patientID
	}
	return res, nil
}

func (m *mockDeps) Uptime() time.Duration { return m.uptime }
func (m *mockDeps) Ready() bool           { return m.ready }

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} { return m.stats }

func newTestMux(deps *mockDeps) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"predictions": int64(3)}}, []string{"*"})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDeps{
			result: prediction.Result{PatientID: "generated", Score: 0.42, Confidence: 0.91, ModelVersion: "v1.2.0"},
			ready:  true,
			uptime: 90 * time.Second,
		}
		mux := newTestMux(deps)

		Convey("When requesting the health endpoint", func() {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should report healthy with uptime", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["status"], ShouldEqual, "healthy")
				So(body["service"], ShouldEqual, "healthcare-prediction-api")
				So(body["version"], ShouldEqual, "1.0.0")
				So(body["uptime_seconds"], ShouldEqual, 90.0)
				So(body["timestamp"], ShouldBeGreaterThan, 0.0)
			})
		})

		Convey("When requesting a prediction", func() {
			req := httptest.NewRequest(http.MethodGet, "/predict", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return a bounded score", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				score, ok := body["score"].(float64)
				So(ok, ShouldBeTrue)
				So(score, ShouldBeBetweenOrEqual, 0.10, 0.95)
				So(body["model_version"], ShouldEqual, "v1.2.0")
				So(body["patient_id"], ShouldEqual, "generated")
			})
		})

		Convey("When requesting a prediction with query parameters", func() {
			req := httptest.NewRequest(http.MethodGet, "/predict?patient_id=patient-7&risk_factor=cardiac", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the patient id should be echoed", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["patient_id"], ShouldEqual, "patient-7")
			})
		})

		Convey("When requesting the root endpoint", func() {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should list the service endpoints", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var body map[string]interface{}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body["message"], ShouldContainSubstring, "Healthcare Prediction API")
				So(body["ready"], ShouldBeTrue)

				endpoints, ok := body["endpoints"].(map[string]interface{})
				So(ok, ShouldBeTrue)
				So(endpoints["health"], ShouldEqual, "/health")
				So(endpoints["predict"], ShouldEqual, "/predict")
				So(endpoints["metrics"], ShouldEqual, "/metrics")
				So(endpoints["docs"], ShouldEqual, "/docs")
			})
		})

		Convey("When requesting the stats endpoint", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return the provider's stats", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "predictions")
			})
		})

		Convey("When requesting the metrics endpoint", func() {
			// Generate some traffic first so counters exist.
			for _, path := range []string{"/health", "/predict"} {
				req := httptest.NewRequest(http.MethodGet, path, nil)
				mux.ServeHTTP(httptest.NewRecorder(), req)
			}

			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then the output should parse as Prometheus exposition text", func() {
				So(w.Code, ShouldEqual, http.StatusOK)

				var parser expfmt.TextParser
				families, err := parser.TextToMetricFamilies(strings.NewReader(w.Body.String()))
				So(err, ShouldBeNil)
				So(families, ShouldContainKey, "predictd_api_requests_total")
			})
		})

		Convey("When using a non-GET method", func() {
			req := httptest.NewRequest(http.MethodPost, "/health", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 405 with a JSON body", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")
			})
		})

		Convey("When requesting an unknown path", func() {
			req := httptest.NewRequest(http.MethodGet, "/unknown", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it should return 404", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestServer_PredictFailure(t *testing.T) {
	Convey("Given a service whose predictor fails", t, func() {
		deps := &mockDeps{err: context.DeadlineExceeded, ready: true}
		mux := newTestMux(deps)

		Convey("When requesting a prediction", func() {
			req := httptest.NewRequest(http.MethodGet, "/predict", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then cancellation maps to 503", func() {
				So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			})
		})
	})
}
