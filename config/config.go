package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Log      Log
	Database Database
	Auth     Auth
	AI       AI
	Exam     Exam
	Academic Academic
}

type Server struct {
	Port           string
	GinMode        string
	AllowedOrigins []string
}

type Log struct {
	Level  string
	Format string
}

type Database struct {
	Driver   string // "postgres" or "sqlite"
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Path     string // sqlite file path
}

type Auth struct {
	JWTSecret string
}

type AI struct {
	Provider       string // "gemini" or "openai"
	GeminiApiKey   string
	GeminiModel    string
	OpenAIApiKey   string
	OpenAIBaseURL  string
	OpenAIModel    string
	ConnectTimeout time.Duration
	TotalTimeout   time.Duration
}

type Exam struct {
	DefaultDurationMinutes int
	DefaultTotalQuestions  int
	ExposeAnswersOnStart   bool
}

// Academic holds the fallbacks used when the settings table has no
// current_session / current_semester rows.
type Academic struct {
	DefaultSession  string
	DefaultSemester string
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_PATH", "smartcampus.db")
	viper.SetDefault("AI_PROVIDER", "gemini")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("AI_CONNECT_TIMEOUT", "10s")
	viper.SetDefault("AI_TOTAL_TIMEOUT", "30s")
	viper.SetDefault("EXAM_DEFAULT_DURATION", 60)
	viper.SetDefault("EXAM_DEFAULT_QUESTIONS", 20)
	viper.SetDefault("EXAM_EXPOSE_ANSWERS_ON_START", false)
	viper.SetDefault("ACADEMIC_DEFAULT_SESSION", "2024/2025")
	viper.SetDefault("ACADEMIC_DEFAULT_SEMESTER", "First")
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")
	config.Server.AllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.Format = viper.GetString("LOG_FORMAT")

	config.Database.Driver = strings.ToLower(viper.GetString("DATABASE_DRIVER"))
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")
	config.Database.Path = viper.GetString("DATABASE_PATH")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")

	config.AI.Provider = strings.ToLower(viper.GetString("AI_PROVIDER"))
	config.AI.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.AI.GeminiModel = viper.GetString("GEMINI_MODEL")
	config.AI.OpenAIApiKey = viper.GetString("OPENAI_API_KEY")
	config.AI.OpenAIBaseURL = viper.GetString("OPENAI_BASE_URL")
	config.AI.OpenAIModel = viper.GetString("OPENAI_MODEL")
	config.AI.ConnectTimeout = viper.GetDuration("AI_CONNECT_TIMEOUT")
	config.AI.TotalTimeout = viper.GetDuration("AI_TOTAL_TIMEOUT")

	config.Exam.DefaultDurationMinutes = viper.GetInt("EXAM_DEFAULT_DURATION")
	config.Exam.DefaultTotalQuestions = viper.GetInt("EXAM_DEFAULT_QUESTIONS")
	config.Exam.ExposeAnswersOnStart = viper.GetBool("EXAM_EXPOSE_ANSWERS_ON_START")

	config.Academic.DefaultSession = viper.GetString("ACADEMIC_DEFAULT_SESSION")
	config.Academic.DefaultSemester = viper.GetString("ACADEMIC_DEFAULT_SEMESTER")

	// Secrets stay out of the startup log.
	log.Info().
		Str("port", config.Server.Port).
		Str("db_driver", config.Database.Driver).
		Str("db_host", config.Database.Host).
		Str("ai_provider", config.AI.Provider).
		Bool("gemini_key_set", config.AI.GeminiApiKey != "").
		Bool("openai_key_set", config.AI.OpenAIApiKey != "").
		Msg("Config loaded")
	return &config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
