package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lshigami/smartcampus/database"
	"github.com/lshigami/smartcampus/internal/middleware"
	"github.com/lshigami/smartcampus/internal/model"
	"github.com/lshigami/smartcampus/internal/repository"
	"github.com/lshigami/smartcampus/internal/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func addDatabaseFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("db-driver", "", "Database driver: postgres or sqlite (overrides DATABASE_DRIVER)")
	f.String("db-path", "", "SQLite database path (overrides DATABASE_PATH)")
}

func openDatabase(cmd *cobra.Command) (*gorm.DB, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return database.NewDatabase(cfg)
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			return database.Migrate(db)
		},
	}
	addDatabaseFlags(cmd)
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the review of one attempt as JSON or CSV",
		RunE:  runExport,
	}
	addDatabaseFlags(cmd)
	f := cmd.Flags()
	f.Uint("attempt-id", 0, "Attempt to export (required)")
	f.String("format", service.FormatJSON, "Output format (json, csv)")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	_ = cmd.MarkFlagRequired("attempt-id")
	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	db, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	attemptID, _ := cmd.Flags().GetUint("attempt-id")
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	results := service.NewResultsService(
		repository.NewExamAttemptRepository(db),
		repository.NewExamQuestionRepository(db),
	)
	rendered, err := results.AuditResults(cmd.Context(), attemptID, format)
	if err != nil {
		return fmt.Errorf("export attempt %d: %s", attemptID, service.MessageOf(err))
	}

	var w io.Writer = cmd.OutOrStdout()
	if output != "-" {
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer file.Close()
		w = file
	}
	if _, err := w.Write(rendered.Body); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	log.Info().Uint("attemptID", attemptID).Str("format", format).Str("output", output).Msg("Attempt exported")
	return nil
}

func seedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a course and register a student for the current term (development)",
		RunE:  runSeed,
	}
	addDatabaseFlags(cmd)
	f := cmd.Flags()
	f.String("course-code", "", "Course code, e.g. CSC 201 (required)")
	f.String("course-title", "", "Course title (required for a new course)")
	f.Int("level", 100, "Course level")
	f.Int("units", 3, "Course units")
	f.Uint("user-id", 0, "Student to register (required)")
	_ = cmd.MarkFlagRequired("course-code")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	db, err := database.NewDatabase(cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	ctx := cmd.Context()
	code, _ := cmd.Flags().GetString("course-code")
	title, _ := cmd.Flags().GetString("course-title")
	level, _ := cmd.Flags().GetInt("level")
	units, _ := cmd.Flags().GetInt("units")
	userID, _ := cmd.Flags().GetUint("user-id")

	courseRepo := repository.NewCourseRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	course, err := findOrCreateCourse(ctx, courseRepo, code, title, level, units)
	if err != nil {
		return err
	}

	academic := service.NewAcademicService(settingRepo, registrationRepo, cfg)
	term, err := academic.CurrentTerm(ctx)
	if err != nil {
		return err
	}
	// Pin the term so later config changes don't orphan the registration.
	if err := settingRepo.Set(ctx, model.SettingCurrentSession, term.Session); err != nil {
		return fmt.Errorf("save current session: %w", err)
	}
	if err := settingRepo.Set(ctx, model.SettingCurrentSemester, term.Semester); err != nil {
		return fmt.Errorf("save current semester: %w", err)
	}

	registered, err := academic.IsRegistered(ctx, userID, course.ID)
	if err != nil {
		return err
	}
	if !registered {
		reg := &model.Registration{UserID: userID, CourseID: course.ID, Session: term.Session, Semester: term.Semester}
		if err := registrationRepo.Create(ctx, reg); err != nil {
			return fmt.Errorf("register user: %w", err)
		}
	}
	log.Info().
		Uint("courseID", course.ID).
		Str("courseCode", course.Code).
		Uint("userID", userID).
		Str("session", term.Session).
		Str("semester", term.Semester).
		Msg("Seed complete")
	return nil
}

func findOrCreateCourse(ctx context.Context, repo repository.CourseRepository, code, title string, level, units int) (*model.Course, error) {
	course, err := repo.FindByCode(ctx, code)
	if err == nil {
		return course, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find course: %w", err)
	}
	if title == "" {
		return nil, errors.New("--course-title is required to create a new course")
	}
	course = &model.Course{Code: code, Title: title, Level: level, Units: units}
	if err := repo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return course, nil
}

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed bearer token for local testing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			userID, _ := cmd.Flags().GetUint("user-id")
			role, _ := cmd.Flags().GetString("role")
			ttl, _ := cmd.Flags().GetDuration("ttl")
			token, err := middleware.IssueToken(cfg.Auth.JWTSecret, userID, role, ttl)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	f := cmd.Flags()
	f.Uint("user-id", 0, "User id to embed (required)")
	f.String("role", middleware.RoleStudent, "Role claim (student, admin)")
	f.Duration("ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}
