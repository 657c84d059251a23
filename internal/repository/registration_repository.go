package repository

import (
	"context"

	"github.com/lshigami/smartcampus/internal/model"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration *model.Registration) error
	Exists(ctx context.Context, userID, courseID uint, session, semester string) (bool, error)
	FindCoursesForUser(ctx context.Context, userID uint, session, semester string) ([]model.Course, error)
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(ctx context.Context, registration *model.Registration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

func (r *registrationRepository) Exists(ctx context.Context, userID, courseID uint, session, semester string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Registration{}).
		Where("user_id = ? AND course_id = ? AND session = ? AND semester = ?", userID, courseID, session, semester).
		Count(&count).Error
	return count > 0, err
}

func (r *registrationRepository) FindCoursesForUser(ctx context.Context, userID uint, session, semester string) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Joins("JOIN registrations ON registrations.course_id = courses.id AND registrations.deleted_at IS NULL").
		Where("registrations.user_id = ? AND registrations.session = ? AND registrations.semester = ?", userID, session, semester).
		Order("courses.code ASC").
		Find(&courses).Error
	return courses, err
}
