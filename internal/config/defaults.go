package config

const (
	defaultOutputDir           = "~/polyscribe"
	defaultWorkDir             = "~/.local/share/polyscribe/work"
	defaultLogDir              = "~/.local/share/polyscribe/logs"
	defaultWhisperXModel       = "large-v3"
	defaultVADMethod           = "silero"
	defaultPython              = "python3"
	defaultYtDlpBinary         = "yt-dlp"
	defaultDownloadFormat      = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	defaultFFmpegBinary        = "ffmpeg"
	defaultAudioCodec          = "pcm_s16le"
	defaultAudioSampleRate     = 16000
	defaultAudioChannels       = 1
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultMinMajorityCoverage = 0.5
	defaultMinModels           = 1
)

// KnownModels lists the model IDs polyscribe ships support for.
var KnownModels = []string{"whisperx", "faster_whisper", "parakeet", "canary"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			WorkDir:   defaultWorkDir,
			LogDir:    defaultLogDir,
		},
		Models: Models{
			Enabled: []string{"whisperx"},
			WhisperX: WhisperX{
				Model:     defaultWhisperXModel,
				VADMethod: defaultVADMethod,
			},
			Scripts: map[string]ScriptModel{
				"faster_whisper": {
					Script: "models/model_faster_whisper.py",
					Python: defaultPython,
					Settings: map[string]any{
						"model_size": "large-v3",
						"device":     "cuda",
					},
				},
				"parakeet": {
					Script: "models/model_parakeet.py",
					Python: defaultPython,
					Settings: map[string]any{
						"model_name": "nvidia/parakeet-tdt-0.6b-v3",
						"device":     "cuda",
					},
				},
				"canary": {
					Script: "models/model_canary.py",
					Python: defaultPython,
					Settings: map[string]any{
						"model_name": "nvidia/canary-1b",
						"device":     "cuda",
					},
				},
			},
		},
		Consensus: Consensus{
			Enabled:             true,
			MinModels:           defaultMinModels,
			MinMajorityCoverage: defaultMinMajorityCoverage,
		},
		Download: Download{
			Binary: defaultYtDlpBinary,
			Format: defaultDownloadFormat,
		},
		Audio: Audio{
			FFmpegBinary: defaultFFmpegBinary,
			Codec:        defaultAudioCodec,
			SampleRate:   defaultAudioSampleRate,
			Channels:     defaultAudioChannels,
		},
		Output: Output{
			Formats: []string{"json", "srt", "txt"},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
