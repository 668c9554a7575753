package workflow

import (
	"fmt"

	"polyscribe/internal/config"
	"polyscribe/internal/services"
	"polyscribe/internal/services/scriptmodel"
	"polyscribe/internal/services/whisperx"
)

// NewRegistry builds the transcriber registry from configuration: the
// built-in WhisperX service plus one script model per configured script.
func NewRegistry(cfg *config.Config) *services.Registry {
	registry := services.NewRegistry()

	registry.Register(whisperx.ModelID, func() (services.Transcriber, error) {
		return whisperx.NewService(whisperx.Config{
			Model:       cfg.Models.WhisperX.Model,
			CUDAEnabled: cfg.Models.WhisperX.CUDAEnabled,
			VADMethod:   cfg.Models.WhisperX.VADMethod,
			HFToken:     cfg.Models.WhisperX.HFToken,
		}), nil
	})

	for id, script := range cfg.Models.Scripts {
		registry.Register(id, func() (services.Transcriber, error) {
			return scriptmodel.New(id, script.Script, script.Python, script.Settings), nil
		})
	}

	return registry
}

// ResolveTranscribers instantiates the transcribers to run. modelIDs
// overrides the configured enabled list when non-empty.
func ResolveTranscribers(cfg *config.Config, registry *services.Registry, modelIDs []string) ([]services.Transcriber, error) {
	if len(modelIDs) == 0 {
		modelIDs = cfg.Models.Enabled
	}
	if len(modelIDs) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "models", "resolve", "no models enabled", nil)
	}

	transcribers := make([]services.Transcriber, 0, len(modelIDs))
	for _, id := range modelIDs {
		t, err := registry.Get(id)
		if err != nil {
			return nil, fmt.Errorf("resolve model %q: %w", id, err)
		}
		transcribers = append(transcribers, t)
	}
	return transcribers, nil
}
