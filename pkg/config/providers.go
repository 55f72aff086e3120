package config

import "fmt"

// Provider names a speech-to-text or chat backend
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderGroq       Provider = "groq"
	ProviderDeepgram   Provider = "deepgram"
	ProviderAnthropic  Provider = "anthropic"
	ProviderAssemblyAI Provider = "assemblyai"
	ProviderGemini     Provider = "gemini"
)

// Token ceilings for a single chat request; groq models have the smallest context.
const (
	GroqTokenCeiling     = 9000
	StandardTokenCeiling = 100000
)

// ProviderConfig is the resolved backend selection for one process.
// APIKey belongs to the transcription backend, ChatAPIKey to the chat backend.
type ProviderConfig struct {
	Provider           Provider
	TranscriptionModel string
	APIKey             string

	ChatProvider       Provider
	SummarizationModel string
	ChatAPIKey         string
}

// HasTranscription reports whether the transcription backend has credentials
func (p ProviderConfig) HasTranscription() bool {
	return p.APIKey != ""
}

// HasChat reports whether the chat backend has credentials
func (p ProviderConfig) HasChat() bool {
	return p.ChatAPIKey != ""
}

// ResolveProviders maps AI_PROVIDER (and the optional SUMMARIZATION_PROVIDER override)
// onto concrete transcription and chat backends.
func ResolveProviders(ai AIConfig) (ProviderConfig, error) {
	var pc ProviderConfig
	var defaultChat Provider

	switch Provider(ai.Provider) {
	case ProviderOpenAI:
		pc.Provider = ProviderOpenAI
		pc.TranscriptionModel = ai.OpenAI.TranscriptionModel
		pc.APIKey = ai.OpenAI.APIKey
		defaultChat = ProviderOpenAI
	case ProviderGroq:
		pc.Provider = ProviderGroq
		pc.TranscriptionModel = ai.Groq.TranscriptionModel
		pc.APIKey = ai.Groq.APIKey
		defaultChat = ProviderGroq
	case ProviderDeepgram:
		pc.Provider = ProviderDeepgram
		pc.TranscriptionModel = ai.Deepgram.Model
		pc.APIKey = ai.Deepgram.APIKey
		defaultChat = ProviderOpenAI
	case ProviderAnthropic:
		// Anthropic has no speech-to-text; audio goes through Whisper.
		pc.Provider = ProviderOpenAI
		pc.TranscriptionModel = ai.OpenAI.TranscriptionModel
		pc.APIKey = ai.OpenAI.APIKey
		defaultChat = ProviderAnthropic
	case ProviderAssemblyAI:
		pc.Provider = ProviderAssemblyAI
		pc.TranscriptionModel = ai.AssemblyAI.Model
		pc.APIKey = ai.AssemblyAI.APIKey
		defaultChat = ProviderOpenAI
	default:
		return ProviderConfig{}, fmt.Errorf("unsupported AI provider: %s", ai.Provider)
	}

	chat := defaultChat
	if ai.SummarizationProvider != "" {
		chat = Provider(ai.SummarizationProvider)
	}

	switch chat {
	case ProviderOpenAI:
		pc.SummarizationModel = ai.OpenAI.SummarizationModel
		pc.ChatAPIKey = ai.OpenAI.APIKey
	case ProviderGroq:
		pc.SummarizationModel = ai.Groq.SummarizationModel
		pc.ChatAPIKey = ai.Groq.APIKey
	case ProviderAnthropic:
		pc.SummarizationModel = ai.Anthropic.Model
		pc.ChatAPIKey = ai.Anthropic.APIKey
	case ProviderGemini:
		pc.SummarizationModel = ai.Gemini.Model
		pc.ChatAPIKey = ai.Gemini.APIKey
	default:
		return ProviderConfig{}, fmt.Errorf("unsupported summarization provider: %s", chat)
	}
	pc.ChatProvider = chat

	return pc, nil
}

// DefaultTokenCeiling returns the input token ceiling used when none is configured
func DefaultTokenCeiling(p Provider) int {
	if p == ProviderGroq {
		return GroqTokenCeiling
	}
	return StandardTokenCeiling
}
