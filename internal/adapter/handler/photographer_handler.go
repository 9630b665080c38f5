package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/srgjo27/shutterbook/internal/adapter/handler/response"
	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/srgjo27/shutterbook/internal/core/domain"
	"github.com/srgjo27/shutterbook/internal/core/search"
	"github.com/srgjo27/shutterbook/internal/core/services"
)

type PhotographerHandler struct {
	search   *services.SearchService
	profiles *services.ProfileService
}

func NewPhotographerHandler(search *services.SearchService, profiles *services.ProfileService) *PhotographerHandler {
	return &PhotographerHandler{search: search, profiles: profiles}
}

type searchResponse struct {
	Photographers []domain.Photographer `json:"photographers"`
	Count         int                   `json:"count"`
}

type portfolioResponse struct {
	PortfolioImages []string `json:"portfolio_images"`
}

func (h *PhotographerHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	criteria, err := parseCriteria(r.URL.Query())
	if err != nil {
		response.Error(w, r, err)
		return
	}

	results, err := h.search.Search(r.Context(), criteria)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, searchResponse{Photographers: results, Count: len(results)})
}

func (h *PhotographerHandler) GetProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, err := uuidParam(ps, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	view, err := h.search.Profile(r.Context(), userID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

func (h *PhotographerHandler) SaveProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req services.UpdateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	profile, err := h.profiles.SaveProfile(r.Context(), user, req)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, profile)
}

func (h *PhotographerHandler) AddPortfolioImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req services.AddPortfolioImageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	images, err := h.profiles.AddPortfolioImage(r.Context(), user, req.ImageRef)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, portfolioResponse{PortfolioImages: images})
}

func (h *PhotographerHandler) RemovePortfolioImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	index, err := strconv.Atoi(ps.ByName("index"))
	if err != nil {
		response.Error(w, r, apperrors.NewValidationError("invalid index"))
		return
	}

	images, err := h.profiles.RemovePortfolioImage(r.Context(), user, index)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, portfolioResponse{PortfolioImages: images})
}

// parseCriteria maps query parameters onto search criteria. Absent
// parameters leave the corresponding bound unconstrained. Prices are in
// cents.
func parseCriteria(q url.Values) (search.Criteria, error) {
	c := search.DefaultCriteria()
	c.NameQuery = q.Get("q")
	c.LocationQuery = q.Get("location")
	c.Specialties = q["specialty"]

	if v := q.Get("min_price"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, apperrors.NewValidationError("invalid min_price")
		}
		c.MinPrice = domain.Money(n)
	}

	if v := q.Get("max_price"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, apperrors.NewValidationError("invalid max_price")
		}
		c.MaxPrice = domain.Money(n)
	}

	if v := q.Get("min_rating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, apperrors.NewValidationError("invalid min_rating")
		}
		c.MinRating = f
	}

	key, err := search.ParseSortKey(q.Get("sort"))
	if err != nil {
		return c, err
	}
	c.SortKey = key

	return c, nil
}
