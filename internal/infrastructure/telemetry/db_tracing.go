package telemetry

import (
	"fmt"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterDBTracing adds a span per GORM statement. Query variables are
// left out of span attributes unless withVariables is set.
func RegisterDBTracing(db *gorm.DB, dbSystem string, withVariables bool, logger *zap.Logger) error {
	opts := []otelgorm.Option{otelgorm.WithDBName(dbSystem)}
	if !withVariables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return fmt.Errorf("failed to register otelgorm: %w", err)
	}
	logger.Info("Database tracing enabled",
		zap.String("db_system", dbSystem),
		zap.Bool("with_variables", withVariables))
	return nil
}
