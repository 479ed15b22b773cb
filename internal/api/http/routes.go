package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/journal"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. journalLog may
// be nil, in which case the journal endpoints are not registered.
func RegisterRoutes(app *fiber.App, service *weather.Service, journalLog *journal.Log) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rec, err := service.Current(c.Context(), city)
		if err != nil {
			return mapServiceError(err, "no weather data for requested city")
		}
		return c.JSON(rec)
	})

	v1.Get("/weather/forecast", func(c *fiber.Ctx) error {
		var req forecastQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		fc, err := service.Forecast(c.Context(), req.City, req.Days)
		if err != nil {
			return mapServiceError(err, "no forecast data for requested city")
		}
		return c.JSON(fc)
	})

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		limit := c.QueryInt("limit", 7)
		if limit < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be at least 1")
		}

		entries, err := service.History(city, limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read weather history")
		}

		return c.JSON(fiber.Map{
			"city":    city,
			"entries": entries,
		})
	})

	v1.Get("/weather/compare", func(c *fiber.Ctx) error {
		var req compareQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		cmp, err := service.Compare(c.Context(), req.First, req.Second)
		if err != nil {
			return mapServiceError(err, "no weather data for one of the requested cities")
		}

		return c.JSON(fiber.Map{
			"comparison": cmp,
			"report":     cmp.Report(),
		})
	})

	v1.Get("/weather/activity", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		rec, suggestions, err := service.Activities(c.Context(), city)
		if err != nil {
			return mapServiceError(err, "no weather data for requested city")
		}

		return c.JSON(fiber.Map{
			"city":        rec.City,
			"weather":     rec,
			"suggestions": suggestions,
		})
	})

	v1.Get("/weather/insights", func(c *fiber.Ctx) error {
		city, err := parseCityQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ins, err := service.Insights(city)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to analyse weather history")
		}
		return c.JSON(ins)
	})

	v1.Get("/cities", func(c *fiber.Ctx) error {
		cities := service.Cities()
		if cities == nil {
			cities = []string{}
		}
		return c.JSON(fiber.Map{"cities": cities})
	})

	if journalLog != nil {
		registerJournalRoutes(v1, journalLog)
	}
}

func registerJournalRoutes(v1 fiber.Router, journalLog *journal.Log) {
	v1.Post("/journal", func(c *fiber.Ctx) error {
		var req journalEntryRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid journal entry")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		entry := journal.Entry{
			Time: time.Now(),
			Text: req.Text,
			Mood: req.Mood,
		}
		if err := journalLog.Append(entry); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save journal entry")
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	})

	v1.Get("/journal", func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 20)
		if limit < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be at least 1")
		}

		entries, err := journalLog.Recent(limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read journal")
		}
		if entries == nil {
			entries = []journal.Entry{}
		}
		return c.JSON(fiber.Map{"entries": entries})
	})
}

// mapServiceError keeps the absence/failure split: ErrNoData becomes a 404,
// anything else (malformed local data, provider plumbing) a 500.
func mapServiceError(err error, notFoundMsg string) error {
	if errors.Is(err, weather.ErrNoData) {
		return fiber.NewError(fiber.StatusNotFound, notFoundMsg)
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}

// cityQuery holds the single-city query parameter.
type cityQuery struct {
	City string `validate:"required"`
}

func parseCityQuery(c *fiber.Ctx) (string, error) {
	q := cityQuery{City: c.Query("city")}
	if err := validate.Struct(q); err != nil {
		return "", err
	}
	return q.City, nil
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	City string `validate:"required"`
	Days int    `validate:"required,min=1,max=7"`
}

func (f *forecastQuery) bind(c *fiber.Ctx) error {
	f.City = c.Query("city")
	f.Days = c.QueryInt("days", 5)
	return validate.Struct(f)
}

// journalEntryRequest is the POST body for a new journal entry.
type journalEntryRequest struct {
	Text string `json:"text" validate:"required"`
	Mood string `json:"mood" validate:"required"`
}

// compareQuery holds query parameters for the comparison endpoint.
type compareQuery struct {
	First  string `validate:"required"`
	Second string `validate:"required"`
}

func (q *compareQuery) bind(c *fiber.Ctx) error {
	q.First = c.Query("first")
	q.Second = c.Query("second")
	return validate.Struct(q)
}
