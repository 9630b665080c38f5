package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/srgjo27/shutterbook/internal/adapter/handler/middleware"
	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/srgjo27/shutterbook/internal/core/domain"
)

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("invalid json body")
	}
	return nil
}

func currentUser(r *http.Request) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		return domain.Identity{}, apperrors.NewUnauthorizedError("not authenticated")
	}
	return id, nil
}

func uuidParam(ps httprouter.Params, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ps.ByName(name))
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError("invalid " + name)
	}
	return id, nil
}
