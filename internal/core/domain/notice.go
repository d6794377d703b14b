package domain

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a user-facing message keyed by a translation identifier.
type Notice struct {
	Level  NoticeLevel       `json:"level"`
	Key    string            `json:"key"`
	Params map[string]string `json:"params,omitempty"`
}
