package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type oracleLogRepo struct {
	db *gorm.DB
}

func (r *oracleLogRepo) Append(ctx context.Context, data OracleRequestData) error {
	row := OracleRequestLog{
		Model:        data.Model,
		Purpose:      data.Purpose,
		InputTokens:  data.InputTokens,
		OutputTokens: data.OutputTokens,
		LatencyMs:    data.LatencyMs,
		Success:      data.Success,
		ErrorMessage: data.ErrorMessage,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("append oracle log: %w", err)
	}
	return nil
}
