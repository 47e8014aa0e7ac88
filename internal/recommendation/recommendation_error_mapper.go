package recommendation

import (
	"errors"
	"strings"

	recommendationerrors "github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/recommendation/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return recommendationerrors.ErrRecommendationNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_recommendation_pending" {
			return recommendationerrors.ErrPendingExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_recommendation_pending") {
		return recommendationerrors.ErrPendingExists
	}

	return err
}
