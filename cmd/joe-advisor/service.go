package main

import (
	"go.uber.org/zap"

	"github.com/joestump/joe-advisor/internal/config"
	"github.com/joestump/joe-advisor/internal/llm"
	"github.com/joestump/joe-advisor/internal/recommend"
)

// newService wires the configured provider and prompt template into a
// recommendation service.
func newService(cfg *config.Config, logger *zap.Logger) (*recommend.Service, error) {
	gen, err := llm.New(cfg)
	if err != nil {
		return nil, err
	}
	builder, err := recommend.NewPromptBuilder(cfg.LLM.Prompt)
	if err != nil {
		return nil, err
	}
	return recommend.NewService(gen, builder, recommend.ServiceOptions{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger.Named("recommend")), nil
}
