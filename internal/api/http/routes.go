package httpapi

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-widget/internal/common"
	"github.com/i474232898/weather-widget/internal/log"
	"github.com/i474232898/weather-widget/internal/store"
	"github.com/i474232898/weather-widget/internal/view"
	"github.com/i474232898/weather-widget/internal/weather"
)

var validate = validator.New()

const (
	msgEmptyInput   = "Enter city name"
	msgCityNotFound = "City not found"
	msgFetchFailed  = "Unable to fetch weather data, please try again"
)

// RegisterRoutes wires the page and JSON handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service, renderer *view.Renderer) {
	app.Get("/", func(c *fiber.Ctx) error {
		return renderPage(c, renderer, fiber.StatusOK, service.Display(), "")
	})

	app.Post("/search", func(c *fiber.Ctx) error {
		_, err := service.Search(c.UserContext(), c.FormValue("city"))
		if err != nil {
			status, msg := searchFailure(err)
			return renderPage(c, renderer, status, service.Display(), msg)
		}
		return renderPage(c, renderer, fiber.StatusOK, service.Display(), "")
	})

	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		q, err := parseSearchQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, msgEmptyInput)
		}

		result, err := service.Search(c.UserContext(), q.City)
		if err != nil {
			status, msg := searchFailure(err)
			return fiber.NewError(status, msg)
		}

		return c.JSON(result)
	})

	v1.Get("/weather/display", func(c *fiber.Ctx) error {
		state := service.Display()
		if state.Empty() {
			return fiber.NewError(fiber.StatusNotFound, store.ErrNotFound.Error())
		}
		return c.JSON(state)
	})
}

// ErrorHandler renders every returned error as a JSON body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// searchQuery holds query parameters for the search endpoint.
type searchQuery struct {
	City string `validate:"required"`
}

func parseSearchQuery(c *fiber.Ctx) (searchQuery, error) {
	q := searchQuery{City: strings.TrimSpace(c.Query("city"))}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// searchFailure maps a search error to an HTTP status and a user-facing message.
func searchFailure(err error) (int, string) {
	var fe *weather.FetchError
	switch {
	case errors.Is(err, weather.ErrEmptyInput):
		return fiber.StatusBadRequest, msgEmptyInput
	case errors.As(err, &fe) && fe.Kind == weather.CityNotFound:
		if fe.Message == "" {
			return fiber.StatusNotFound, msgCityNotFound
		}
		return fiber.StatusNotFound, common.CapitalizeFirst(fe.Message)
	default:
		return fiber.StatusBadGateway, msgFetchFailed
	}
}

func renderPage(c *fiber.Ctx, renderer *view.Renderer, status int, state weather.DisplayState, message string) error {
	c.Status(status)
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	if err := renderer.Render(c, view.NewPage(state, message)); err != nil {
		log.Errorw("failed to render page", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}
	return nil
}
