package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	GoogleAPIKey string `env:"GOOGLE_API_KEY,required"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	FirebaseCredentialsPath string `env:"FIREBASE_SERVICE_ACCOUNT_PATH" envDefault:"./firebase-service-account.json"`
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID,required"`
	FirebaseStorageBucket   string `env:"FIREBASE_STORAGE_BUCKET"`

	RequireAuth bool `env:"REQUIRE_AUTH" envDefault:"false"`

	SMTPHost           string `env:"SMTP_SERVER" envDefault:"smtp.gmail.com"`
	SMTPPort           int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUseTLS         bool   `env:"SMTP_USE_TLS" envDefault:"false"`
	SenderEmail        string `env:"SENDER_EMAIL"`
	SenderPassword     string `env:"SENDER_PASSWORD"`
	CompanyEmail       string `env:"COMPANY_EMAIL"`
	AppName            string `env:"APP_NAME" envDefault:"Pawspective"`
	SubjectPrefix      string `env:"FEEDBACK_SUBJECT_PREFIX" envDefault:"Pawspective App Feedback"`
	EmailRetryAttempts int    `env:"EMAIL_RETRY_ATTEMPTS" envDefault:"3"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if cfg.FirebaseStorageBucket == "" {
		cfg.FirebaseStorageBucket = cfg.FirebaseProjectID + ".appspot.com"
	}
	return &cfg, nil
}
