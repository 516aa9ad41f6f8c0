package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"edupay-backend/internal/domain/actor"
	"edupay-backend/pkg/fault"
)

// Actor headers. Identity is resolved upstream; the core only receives the
// tokens.
const (
	HeaderActorRole = "Ax-Actor-Role"
	HeaderActorID   = "Ax-Actor-Id"
)

func actorRole(c echo.Context) actor.Role {
	return actor.Role(c.Request().Header.Get(HeaderActorRole))
}

func actorID(c echo.Context) string {
	return c.Request().Header.Get(HeaderActorID)
}

// writeErr maps the fault taxonomy onto HTTP statuses. Invariant breaches are
// logged with detail but surface as an opaque 500.
func writeErr(c echo.Context, log *logrus.Logger, err error) error {
	switch fault.KindOf(err) {
	case fault.KindValidation:
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case fault.KindAuthorization:
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case fault.KindNotFound:
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case fault.KindConflict:
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case fault.KindInvariant:
		log.WithError(err).Error("invariant violation")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal inconsistency, the operation was rolled back"})
	default:
		log.WithError(err).Error("unhandled error")
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
