package listings

import (
	"strconv"

	listsvc "petsitter-backend/internal/application/listings"
	"petsitter-backend/internal/domain"
	"petsitter-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *listsvc.Service
}

type createListingRequest struct {
	OwnerID        string   `json:"ownerId"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Species        string   `json:"species"`
	ListingType    []string `json:"listingType"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate"`
	SitterVerified bool     `json:"sitterVerified"`
	Price          float64  `json:"price"`
	Breed          string   `json:"breed"`
	Age            int      `json:"age"`
	Size           string   `json:"size"`
	Feeding        string   `json:"feeding"`
	Medication     string   `json:"medication"`
}

// POST /api/v1/listings — 201 echoing the persisted listing
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body createListingRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	types := make([]domain.ListingType, 0, len(body.ListingType))
	for _, t := range body.ListingType {
		types = append(types, domain.ListingType(t))
	}

	listing, err := h.Service.Create(c.Context(), listsvc.CreateListingInput{
		OwnerID:        body.OwnerID,
		Title:          body.Title,
		Description:    body.Description,
		Species:        domain.Species(body.Species),
		ListingTypes:   types,
		StartDate:      body.StartDate,
		EndDate:        body.EndDate,
		SitterVerified: body.SitterVerified,
		Price:          body.Price,
		Breed:          body.Breed,
		Age:            body.Age,
		Size:           body.Size,
		Feeding:        body.Feeding,
		Medication:     body.Medication,
	})
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

// GET /api/v1/listings — optional query-string filters; string values are
// coerced to the field's native type and unparsable values are dropped rather
// than treated as errors.
func (h *Handlers) Find(c *fiber.Ctx) error {
	listings, err := h.Service.FindAll(c.Context(), parseFilter(c))
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(listings)
}

// GET /api/v1/listings/:id
func (h *Handlers) FindOne(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Validation failed (numeric string is expected)")
	}
	listing, err := h.Service.FindOne(c.Context(), id)
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(listing)
}

// GET /api/v1/listings/:id/with-applications
func (h *Handlers) FindOneWithApplications(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, "Validation failed (numeric string is expected)")
	}
	listing, err := h.Service.FindOneWithApplications(c.Context(), id)
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(listing)
}

// GET /api/v1/listings/owner/:ownerId
func (h *Handlers) FindByOwner(c *fiber.Ctx) error {
	listings, err := h.Service.FindByOwner(c.Context(), c.Params("ownerId"))
	if err != nil {
		return response.DomainError(c, err)
	}
	return c.JSON(listings)
}

// --- helpers ---

func parseID(c *fiber.Ctx, param string) (uint, error) {
	n, err := strconv.ParseUint(c.Params(param), 10, 64)
	return uint(n), err
}

// parseFilter coerces query-string values: numeric fields via parse-and-ignore,
// sitterVerified only on an exact "true"/"false" match, the rest as strings.
func parseFilter(c *fiber.Ctx) listsvc.Filter {
	var f listsvc.Filter

	if q := c.Query("id"); q != "" {
		if n, err := strconv.ParseUint(q, 10, 64); err == nil {
			id := uint(n)
			f.ID = &id
		}
	}
	if q := c.Query("price"); q != "" {
		if n, err := strconv.ParseFloat(q, 64); err == nil {
			f.Price = &n
		}
	}
	if q := c.Query("age"); q != "" {
		if n, err := strconv.Atoi(q); err == nil {
			f.Age = &n
		}
	}
	switch c.Query("sitterVerified") {
	case "true":
		v := true
		f.SitterVerified = &v
	case "false":
		v := false
		f.SitterVerified = &v
	}

	if q := c.Query("ownerId"); q != "" {
		f.OwnerID = &q
	}
	if q := c.Query("title"); q != "" {
		f.Title = &q
	}
	if q := c.Query("description"); q != "" {
		f.Description = &q
	}
	if q := c.Query("species"); q != "" {
		sp := domain.Species(q)
		f.Species = &sp
	}
	if q := c.Query("listingType"); q != "" {
		lt := domain.ListingType(q)
		f.ListingType = &lt
	}
	if q := c.Query("startDate"); q != "" {
		f.StartDate = &q
	}
	if q := c.Query("endDate"); q != "" {
		f.EndDate = &q
	}
	if q := c.Query("breed"); q != "" {
		f.Breed = &q
	}
	if q := c.Query("size"); q != "" {
		f.Size = &q
	}
	if q := c.Query("feeding"); q != "" {
		f.Feeding = &q
	}
	if q := c.Query("medication"); q != "" {
		f.Medication = &q
	}
	return f
}
