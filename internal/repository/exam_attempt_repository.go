package repository

import (
	"context"
	"time"

	"github.com/lshigami/smartcampus/internal/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttemptFilter narrows the admin audit listing. Nil fields are ignored.
type AttemptFilter struct {
	UserID   *uint
	CourseID *uint
}

type ExamAttemptRepository interface {
	Create(ctx context.Context, attempt *model.ExamAttempt) error
	FindByID(ctx context.Context, id uint) (*model.ExamAttempt, error)
	FindByIDAndUser(ctx context.Context, id, userID uint) (*model.ExamAttempt, error)
	FindLatestByExamAndUser(ctx context.Context, examID, userID uint) (*model.ExamAttempt, error)
	FindAllByUser(ctx context.Context, userID uint) ([]model.ExamAttempt, error)
	FindAll(ctx context.Context, filter AttemptFilter) ([]model.ExamAttempt, error)
	// Complete writes score, answers and completed_at in one conditional
	// UPDATE. It returns false when the attempt was already completed (or is
	// not owned by userID), so a racing second submit never overwrites.
	Complete(ctx context.Context, id, userID uint, score int, answers datatypes.JSON, completedAt time.Time) (bool, error)
}

type examAttemptRepository struct {
	db *gorm.DB
}

func NewExamAttemptRepository(db *gorm.DB) ExamAttemptRepository {
	return &examAttemptRepository{db: db}
}

func (r *examAttemptRepository) Create(ctx context.Context, attempt *model.ExamAttempt) error {
	return r.db.WithContext(ctx).Omit("Exam", "Questions").Create(attempt).Error
}

func (r *examAttemptRepository) FindByID(ctx context.Context, id uint) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	if err := r.db.WithContext(ctx).Preload("Exam.Course").First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *examAttemptRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	err := r.db.WithContext(ctx).
		Preload("Exam.Course").
		Where("id = ? AND user_id = ?", id, userID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *examAttemptRepository) FindLatestByExamAndUser(ctx context.Context, examID, userID uint) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	err := r.db.WithContext(ctx).
		Preload("Exam.Course").
		Where("exam_id = ? AND user_id = ?", examID, userID).
		Order("started_at DESC, id DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *examAttemptRepository) FindAllByUser(ctx context.Context, userID uint) ([]model.ExamAttempt, error) {
	return r.FindAll(ctx, AttemptFilter{UserID: &userID})
}

func (r *examAttemptRepository) FindAll(ctx context.Context, filter AttemptFilter) ([]model.ExamAttempt, error) {
	var attempts []model.ExamAttempt
	query := r.db.WithContext(ctx).Preload("Exam.Course")
	if filter.UserID != nil {
		query = query.Where("exam_attempts.user_id = ?", *filter.UserID)
	}
	if filter.CourseID != nil {
		query = query.Joins("JOIN exams ON exams.id = exam_attempts.exam_id").
			Where("exams.course_id = ?", *filter.CourseID)
	}
	err := query.Order("exam_attempts.started_at DESC, exam_attempts.id DESC").Find(&attempts).Error
	return attempts, err
}

func (r *examAttemptRepository) Complete(ctx context.Context, id, userID uint, score int, answers datatypes.JSON, completedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.ExamAttempt{}).
		Where("id = ? AND user_id = ? AND completed_at IS NULL", id, userID).
		Updates(map[string]interface{}{
			"score":        score,
			"answers_json": answers,
			"completed_at": completedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
