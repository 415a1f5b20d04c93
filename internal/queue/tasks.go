package queue

const (
	TypeTranscriptProcess = "transcript:process"
	TypeMinutesGenerate   = "minutes:generate"
)

type TranscriptProcessPayload struct {
	TranscriptID  string `json:"transcript_id"`
	FilePath      string `json:"file_path"`
	Language      string `json:"language,omitempty"`
	WindowSeconds int    `json:"window_seconds,omitempty"`
	Model         string `json:"model,omitempty"`
}

// MinutesGeneratePayload carries everything the worker needs to run one
// generation. TemplateBody is the full template text snapshotted at enqueue
// time: template registries are per-process, so the worker cannot resolve a
// custom name created through the API.
type MinutesGeneratePayload struct {
	MinutesID    string `json:"minutes_id"`
	TranscriptID string `json:"transcript_id"`
	TemplateName string `json:"template_name,omitempty"`
	TemplateBody string `json:"template_body,omitempty"`
	Provider     string `json:"provider,omitempty"`
	Model        string `json:"model"`
}
