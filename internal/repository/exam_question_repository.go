package repository

import (
	"context"

	"github.com/lshigami/smartcampus/internal/model"
	"gorm.io/gorm"
)

type ExamQuestionRepository interface {
	// CreateBatch inserts the whole frozen set in one transaction. The unique
	// (attempt_id, question_order) index rejects a second concurrent set.
	// Generated ids are written back into the caller's slice.
	CreateBatch(ctx context.Context, questions []model.ExamQuestion) error
	FindByAttemptID(ctx context.Context, attemptID uint) ([]model.ExamQuestion, error)
}

type examQuestionRepository struct {
	db *gorm.DB
}

func NewExamQuestionRepository(db *gorm.DB) ExamQuestionRepository {
	return &examQuestionRepository{db: db}
}

func (r *examQuestionRepository) CreateBatch(ctx context.Context, questions []model.ExamQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&questions, 100).Error
	})
}

func (r *examQuestionRepository) FindByAttemptID(ctx context.Context, attemptID uint) ([]model.ExamQuestion, error) {
	var questions []model.ExamQuestion
	err := r.db.WithContext(ctx).
		Where("attempt_id = ?", attemptID).
		Order("question_order ASC").
		Find(&questions).Error
	return questions, err
}
