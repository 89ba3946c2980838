package app

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/docugraph/docugraph-backend/internal/platform/envutil"
	"github.com/docugraph/docugraph-backend/internal/platform/logger"
)

type Config struct {
	Port         string
	LLMProvider  string
	AllowOrigins []string
	Questions    []string
}

// defaultQuestions seeds the suggestion endpoint when no questions
// file is configured.
var defaultQuestions = []string{
	"Which companies are mentioned and where are they located?",
	"Who founded which organization?",
	"What fines were imposed, and on whom?",
	"Which people are directors, and of what?",
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		LLMProvider: envutil.String("LLM_PROVIDER", "openai"),
		Questions:   defaultQuestions,
	}

	if origins := envutil.String("CORS_ALLOW_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowOrigins = append(cfg.AllowOrigins, o)
			}
		}
	}

	if path := envutil.String("QUESTIONS_FILE", ""); path != "" {
		qs, err := loadQuestionsFile(path)
		switch {
		case err != nil:
			log.Warn("questions file load failed, using defaults", "path", path, "error", err)
		case len(qs) == 0:
			log.Warn("questions file is empty, using defaults", "path", path)
		default:
			cfg.Questions = qs
		}
	}
	return cfg
}

type questionsFile struct {
	Questions []string `yaml:"questions"`
}

func loadQuestionsFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var qf questionsFile
	if err := yaml.Unmarshal(raw, &qf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out := make([]string, 0, len(qf.Questions))
	for _, q := range qf.Questions {
		if q = strings.TrimSpace(q); q != "" {
			out = append(out, q)
		}
	}
	return out, nil
}
