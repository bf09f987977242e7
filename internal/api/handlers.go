package api

import (
	"errors"

	"github.com/burakkosova/mapty/internal/app"
	"github.com/burakkosova/mapty/internal/geo"
	"github.com/burakkosova/mapty/internal/ui"
	"github.com/burakkosova/mapty/internal/workout"

	"github.com/gofiber/fiber/v2"
)

// Surfaces are the server-side page models the routes read from.
type Surfaces struct {
	Maps *ui.Maps
	Page *ui.Page
	// Locator is nil when the position comes from configuration.
	Locator *geo.Client
}

type stateResponse struct {
	App  app.Snapshot    `json:"app"`
	Map  *ui.MapSnapshot `json:"map,omitempty"`
	Page ui.PageSnapshot `json:"page"`
}

type position struct {
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Error string   `json:"error"`
}

func RegisterRoutes(r fiber.Router, ctrl *app.Controller, s Surfaces) {
	r.Get("/state", func(c *fiber.Ctx) error {
		resp := stateResponse{App: ctrl.Snapshot(), Page: s.Page.Snapshot()}
		if m := s.Maps.Current(); m != nil {
			snap := m.Snapshot()
			resp.Map = &snap
		}
		return c.JSON(resp)
	})

	r.Get("/workouts", func(c *fiber.Ctx) error {
		return c.JSON(ctrl.Snapshot().Workouts)
	})

	r.Post("/geolocation", func(c *fiber.Ctx) error {
		if s.Locator == nil {
			return fiber.NewError(fiber.StatusConflict, "position is fixed by configuration")
		}
		var body position
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var err error
		if body.Error != "" || body.Lat == nil || body.Lng == nil {
			cause := geo.ErrPositionUnavailable
			if body.Error != "" {
				cause = errors.New(body.Error)
			}
			err = s.Locator.Reject(cause)
		} else {
			err = s.Locator.Resolve(geo.Coords{Lat: *body.Lat, Lng: *body.Lng})
		}
		if errors.Is(err, geo.ErrNoPendingRequest) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return c.JSON(ctrl.Snapshot())
	})

	r.Post("/map/click", func(c *fiber.Ctx) error {
		var body struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := s.Maps.Click(geo.Coords{Lat: body.Lat, Lng: body.Lng}); err != nil {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return c.JSON(ctrl.Snapshot())
	})

	r.Post("/form/type", func(c *fiber.Ctx) error {
		ctrl.ToggleElevationField()
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/form/hide", func(c *fiber.Ctx) error {
		if err := ctrl.HideForm(); err != nil {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/form/submit", func(c *fiber.Ctx) error {
		var in app.FormInput
		if err := c.BodyParser(&in); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		w, err := ctrl.Submit(c.Context(), in)
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, app.ErrFormHidden):
			return fiber.NewError(fiber.StatusConflict, err.Error())
		case errors.Is(err, workout.ErrUnknownKind):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(w)
	})

	r.Post("/workouts/:id/focus", func(c *fiber.Ctx) error {
		found := ctrl.MoveToPopup(c.Params("id"))
		return c.JSON(fiber.Map{"found": found})
	})

	r.Post("/reset", func(c *fiber.Ctx) error {
		if err := ctrl.Reset(c.Context()); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
