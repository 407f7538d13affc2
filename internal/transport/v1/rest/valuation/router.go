package valuationcntrl

import (
	"time"

	"autovalue/internal/metrics"
	"autovalue/pkg/valuation"

	"github.com/gofiber/fiber/v2"
)

func RegisterValuationRoutes(router fiber.Router, s *valuation.ServingContext, m *metrics.Registry, now func() time.Time) {
	valuationCntrl := NewValuationController(s, m, now)
	router.Post("/valuations", valuationCntrl.createValuationHandler)
	router.Get("/model", valuationCntrl.getModelHandler)
	router.Get("/depreciation.png", valuationCntrl.getDepreciationHandler)
}
