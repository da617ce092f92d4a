// internal/app/features/schedules/handler.go
package schedules

import (
	"time"

	uierrors "github.com/dalemusser/servehub/internal/app/features/errors"
	wizarddraftstore "github.com/dalemusser/servehub/internal/app/store/wizarddrafts"
	"github.com/dalemusser/servehub/internal/app/system/ratelimit"
	"github.com/dalemusser/servehub/internal/app/system/wizard"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the schedules feature:
// the schedule wizard endpoints and schedule reads.
type Handler struct {
	DB     *mongo.Database
	Steps  *wizard.Registry
	Drafts *wizarddraftstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger

	// StartLimiter throttles wizard starts per client IP. Nil disables it.
	StartLimiter *ratelimit.Limiter
}

// NewHandler constructs a schedules Handler. Drafts expire draftTTL after
// their last change.
func NewHandler(db *mongo.Database, steps *wizard.Registry, draftTTL time.Duration, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Steps:  steps,
		Drafts: wizarddraftstore.New(db, draftTTL),
		ErrLog: errLog,
		Log:    logger,
	}
}
