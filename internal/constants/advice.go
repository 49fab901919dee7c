package constants

const (
	// Provider identifiers as persisted in the settings object
	ProviderHosted = "hosted"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"

	// OpenAI chat completions
	OpenAIModel     = "gpt-4o-mini"
	OpenAIMaxTokens = 600
	OpenAIBaseURL   = "https://api.openai.com/v1"

	// Local inference
	OllamaModel   = "llama3.2"
	OllamaBaseURL = "http://localhost:11434"

	// Advice proxy
	AdvicePath        = "/api/advice"
	DefaultProxyAddr  = ":8787"
	EnvAccessCode     = "ACCESS_CODE"
	EnvOpenAIAPIKey   = "OPENAI_API_KEY"
	KeyringAccessCode = "proxy-access-code"
	KeyringOpenAIKey  = "proxy-openai-api-key"

	// FallbackReply is stored as the assistant turn when a backend answers with an
	// unexpected shape.
	FallbackReply = "Could not get a response."

	// SystemPrompt is prepended to every conversation sent upstream.
	SystemPrompt = `You are a warm, attentive listener. Stay with the user's worry until they feel settled.
- First acknowledge their feelings
- Never be pushy
- Give concrete, practical advice
- If they say "I still don't get it" or "tell me more", answer again in more detail, as many times as needed
- It is fine to keep the conversation going until they are satisfied`

	// TopicPrefix heads the synthetic user turn that opens every outbound conversation.
	TopicPrefix = "[Worry]"
)
