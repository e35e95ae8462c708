package api

// SystemStatus is the hardware detection verdict from GET /api/system.
type SystemStatus struct {
	Platform  string `json:"platform"`
	CanRunPro bool   `json:"can_run_pro"`
	Message   string `json:"message"`
}

// VoiceInfo describes one voice in the server catalog.
type VoiceInfo struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
	Accent string `json:"accent"`
	Style  string `json:"style"`
	Lang   string `json:"lang"`
}

// VoicesResponse is the payload of GET /api/voices.
type VoicesResponse struct {
	Success bool                 `json:"success"`
	Default string               `json:"default"`
	Voices  map[string]VoiceInfo `json:"voices"`
}

// SynthesizeRequest is the body of POST /api/synthesize.
type SynthesizeRequest struct {
	Text   string  `json:"text"`
	Voice  string  `json:"voice"`
	Speed  float64 `json:"speed"`
	Format string  `json:"format"`
	Model  string  `json:"model"`
}

// SynthesizeResponse is the success payload of POST /api/synthesize.
type SynthesizeResponse struct {
	Success     bool    `json:"success"`
	AudioURL    string  `json:"audio_url"`
	AudioURLMP3 string  `json:"audio_url_mp3,omitempty"`
	Filename    string  `json:"filename"`
	Duration    float64 `json:"duration"`
	Message     string  `json:"message"`
}

// HealthResponse is the payload of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Model   string `json:"model"`
	Version string `json:"version"`
}

// errorBody is the detail envelope the server uses for non-2xx responses.
type errorBody struct {
	Detail string `json:"detail"`
}
