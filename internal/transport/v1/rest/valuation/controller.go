package valuationcntrl

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"time"

	"autovalue/internal/metrics"
	"autovalue/pkg/report"
	"autovalue/pkg/valuation"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	engineName      = "Gradient Boosted Trees"
	degradedMessage = "Model files not found. Run the train command first."
)

type valuationController struct {
	s         *valuation.ServingContext
	metrics   *metrics.Registry
	now       func() time.Time
	validator *validator.Validate
}

// NewValuationController serves valuations from s. A nil s puts every
// model-backed endpoint in degraded mode.
func NewValuationController(s *valuation.ServingContext, m *metrics.Registry, now func() time.Time) *valuationController {
	if now == nil {
		now = time.Now
	}
	return &valuationController{
		s:         s,
		metrics:   m,
		now:       now,
		validator: validator.New(),
	}
}

func (v *valuationController) createValuationHandler(c *fiber.Ctx) error {
	start := time.Now()
	var req createValuationRequest
	if err := c.BodyParser(&req); err != nil {
		return v.reject(c, fiber.StatusUnprocessableEntity, err)
	}
	if err := v.validator.Struct(req); err != nil {
		return v.reject(c, fiber.StatusUnprocessableEntity, err)
	}
	if req.Year > v.now().Year() {
		return v.reject(c, fiber.StatusUnprocessableEntity, fmt.Errorf("year %d is in the future", req.Year))
	}

	res, err := v.s.Valuate(valuation.Input{
		ShowroomPrice:    req.ShowroomPrice,
		KilometersDriven: req.KmsDriven,
		ManufactureYear:  req.Year,
		FuelType:         req.FuelType,
		SellerType:       req.SellerType,
		Transmission:     req.Transmission,
	})
	if err != nil {
		return v.fail(c, err)
	}
	v.metrics.Valuations.Inc()
	v.metrics.ValuationLatency.Observe(time.Since(start).Seconds())

	return c.Status(fiber.StatusCreated).JSON(createValuationResponse{
		ValuationID:           uuid.NewString(),
		CarName:               req.CarName,
		PredictedValue:        res.PredictedValue,
		PredictedValueDisplay: FormatINR(res.PredictedValue),
		RetentionRatio:        res.RetentionRatio,
		RetentionDisplay:      formatRetention(res),
		RetentionCapped:       res.DisplayRetention(),
		Age:                   res.Age,
	})
}

func (v *valuationController) getModelHandler(c *fiber.Ctx) error {
	meta, err := v.s.Metadata()
	if err != nil {
		return v.fail(c, err)
	}
	return c.JSON(getModelResponse{
		Engine:          engineName,
		Accuracy:        meta.Accuracy,
		MAE:             meta.MAE,
		AccuracyDisplay: fmt.Sprintf("%.2f%%", meta.Accuracy),
		MAEDisplay:      FormatINR(meta.MAE),
		Columns:         v.s.Columns(),
	})
}

// getDepreciationHandler does not need the model and works in degraded mode.
func (v *valuationController) getDepreciationHandler(c *fiber.Ctx) error {
	var req getDepreciationRequest
	if err := c.QueryParser(&req); err != nil {
		return v.reject(c, fiber.StatusUnprocessableEntity, err)
	}
	if err := v.validator.Struct(req); err != nil {
		return v.reject(c, fiber.StatusUnprocessableEntity, err)
	}

	p, err := report.DepreciationCurve(req.ShowroomPrice, v.now().Year()-req.Year)
	if err != nil {
		return v.reject(c, fiber.StatusUnprocessableEntity, err)
	}
	var buf bytes.Buffer
	if err := report.WritePNG(p, &buf); err != nil {
		log.Printf("valuation: render depreciation chart: %v", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf.Bytes())
}

func (v *valuationController) reject(c *fiber.Ctx, status int, err error) error {
	v.metrics.ValuationErrors.Inc()
	return c.Status(status).JSON(errorResponse{Error: err.Error()})
}

func (v *valuationController) fail(c *fiber.Ctx, err error) error {
	v.metrics.ValuationErrors.Inc()
	var sue *valuation.SchemaUnavailableError
	if errors.As(err, &sue) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(errorResponse{Error: degradedMessage})
	}
	log.Printf("valuation: %v", err)
	return c.SendStatus(fiber.StatusInternalServerError)
}

// FormatINR renders an amount as rupees with digit grouping and two
// decimals, e.g. ₹1,234.50.
func FormatINR(v float64) string {
	return "₹" + humanize.FormatFloat("#,###.##", v)
}

func formatRetention(r valuation.Result) string {
	if !r.RetentionAvailable {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", r.RetentionRatio*100)
}
