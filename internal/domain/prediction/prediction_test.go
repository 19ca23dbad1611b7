package prediction_test

import (
	"context"
	"testing"
	"time"

	prediction "github.com/carelens/predictd/internal/domain/prediction"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMockPredictor_Predict(t *testing.T) {
	Convey("Given a mock predictor with default bounds", t, func() {
		p := prediction.NewMockPredictor()

		Convey("When predicting repeatedly", func() {
			Convey("Then every score and confidence stays within bounds", func() {
				for i := 0; i < 500; i++ {
					res, err := p.Predict(context.Background(), prediction.Input{
						PatientID:  "patient-123",
						RiskFactor: "cardiac",
					})
					So(err, ShouldBeNil)
					So(res.Score, ShouldBeBetweenOrEqual, 0.10, 0.95)
					So(res.Confidence, ShouldBeBetweenOrEqual, 0.80, 0.99)
				}
			})
		})

		Convey("When predicting for a known patient", func() {
			res, err := p.Predict(context.Background(), prediction.Input{PatientID: "patient-42"})

			Convey("Then the patient id and model version are echoed", func() {
				So(err, ShouldBeNil)
				So(res.PatientID, ShouldEqual, "patient-42")
				So(res.ModelVersion, ShouldEqual, "v1.2.0")
			})
		})
	})

	Convey("Given two predictors with the same seed", t, func() {
		a := prediction.NewMockPredictor(prediction.WithSeed(7))
		b := prediction.NewMockPredictor(prediction.WithSeed(7))

		Convey("When both predict the same sequence", func() {
			Convey("Then the outputs are identical", func() {
				for i := 0; i < 10; i++ {
					ra, errA := a.Predict(context.Background(), prediction.Input{PatientID: "x"})
					rb, errB := b.Predict(context.Background(), prediction.Input{PatientID: "x"})
					So(errA, ShouldBeNil)
					So(errB, ShouldBeNil)
					So(ra.Score, ShouldEqual, rb.Score)
					So(ra.Confidence, ShouldEqual, rb.Confidence)
				}
			})
		})
	})

	Convey("Given a predictor with custom bounds and weights", t, func() {
		p := prediction.NewMockPredictor(
			prediction.WithScoreBounds(0.3, 0.6),
			prediction.WithConfidenceBounds(0.5, 0.7),
			prediction.WithRiskWeights(map[string]float64{"cardiac": 5.0}, 0.5),
			prediction.WithModelVersion("v9.9.9"),
		)

		Convey("When predicting with a heavily weighted risk factor", func() {
			Convey("Then the score still respects the configured bounds", func() {
				for i := 0; i < 200; i++ {
					res, err := p.Predict(context.Background(), prediction.Input{RiskFactor: "cardiac"})
					So(err, ShouldBeNil)
					So(res.Score, ShouldBeBetweenOrEqual, 0.3, 0.6)
					So(res.Confidence, ShouldBeBetweenOrEqual, 0.5, 0.7)
					So(res.ModelVersion, ShouldEqual, "v9.9.9")
				}
			})
		})

		Convey("When predicting with an unknown risk factor", func() {
			res, err := p.Predict(context.Background(), prediction.Input{RiskFactor: "unknown"})

			Convey("Then the fallback weight applies and bounds hold", func() {
				So(err, ShouldBeNil)
				So(res.Score, ShouldBeBetweenOrEqual, 0.3, 0.6)
			})
		})
	})

	Convey("Given a predictor with three-decimal bounds", t, func() {
		p := prediction.NewMockPredictor(
			prediction.WithScoreBounds(0.105, 0.946),
			prediction.WithConfidenceBounds(0.805, 0.985),
			prediction.WithRiskWeights(map[string]float64{"cardiac": 5.0}, 1.0),
		)

		Convey("When predicting repeatedly with a heavy weight", func() {
			Convey("Then rounding never pushes results outside the bounds", func() {
				for i := 0; i < 5000; i++ {
					res, err := p.Predict(context.Background(), prediction.Input{RiskFactor: "cardiac"})
					So(err, ShouldBeNil)
					So(res.Score, ShouldBeBetweenOrEqual, 0.105, 0.946)
					So(res.Confidence, ShouldBeBetweenOrEqual, 0.805, 0.985)
				}
			})
		})
	})

	Convey("Given a predictor with simulated latency", t, func() {
		p := prediction.NewMockPredictor(
			prediction.WithLatencyRange(50*time.Millisecond, 100*time.Millisecond),
		)

		Convey("When the context is already cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := p.Predict(ctx, prediction.Input{PatientID: "p"})

			Convey("Then the prediction is aborted", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When the context stays live", func() {
			start := time.Now()
			_, err := p.Predict(context.Background(), prediction.Input{PatientID: "p"})

			Convey("Then the simulated wait is observed", func() {
				So(err, ShouldBeNil)
				So(time.Since(start), ShouldBeGreaterThanOrEqualTo, 50*time.Millisecond)
			})
		})
	})
}
