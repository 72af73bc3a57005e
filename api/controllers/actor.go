package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/sivermarket/siver-backend/api/middleware"
	"github.com/sivermarket/siver-backend/pkg/outbox"
)

// actorRef builds the audit reference from the authenticated request, nil
// when the caller is anonymous.
func actorRef(r *http.Request) *outbox.ActorRef {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return nil
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &outbox.ActorRef{
		UserID: userID,
		Role:   middleware.RoleFromContext(r.Context()),
	}
}
