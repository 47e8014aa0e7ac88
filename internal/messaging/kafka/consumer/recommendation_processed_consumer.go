package consumer

import (
	"context"
	"encoding/json"

	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/bootstrap"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/employee"
	"github.com/finRed/Business-Intelligence-Reddyfin-221510014-sub000/internal/events"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeRecommendationProcessed membersihkan cache intelligence di semua
// instance setelah keputusan rekomendasi, dan mencatat jejak audit keputusan.
// Invalidasi bersifat idempotent; replay event aman.
func ConsumeRecommendationProcessed(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	auditLogger bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.recommendation_processed")
	log.Info("recommendation processed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("recommendation processed consumer stopped")
				return
			}
			log.Error("fetch recommendation processed message failed", zap.Error(err))
			continue
		}

		var event events.RecommendationProcessedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode recommendation processed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		cacheKey := employee.GetIntelligenceKey(event.EmployeeID)
		if err := rdb.Del(ctx, cacheKey).Err(); err != nil {
			log.Error("invalidate intelligence cache failed",
				zap.String("key", cacheKey),
				zap.String("recommendation_id", event.RecommendationID),
				zap.Error(err),
			)
			continue
		}

		if auditLogger != nil {
			auditLogger.Log(ctx, bootstrap.AuditLog{
				Action:  "recommendation.processed",
				Message: "recommendation decision applied",
				Meta: map[string]any{
					"request_id":        event.RequestID,
					"recommendation_id": event.RecommendationID,
					"employee_id":       event.EmployeeID,
					"decision":          event.Decision,
					"processed_by":      event.ProcessedBy,
				},
			})
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit recommendation processed message failed", zap.Error(err))
			continue
		}

		log.Info("intelligence cache invalidated from event",
			zap.String("request_id", event.RequestID),
			zap.String("recommendation_id", event.RecommendationID),
			zap.String("employee_id", event.EmployeeID),
			zap.String("decision", event.Decision),
		)
	}
}
