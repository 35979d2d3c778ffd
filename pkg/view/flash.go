package view

type FlashKind string

const (
	FlashInfo    FlashKind = "info"
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot alert shown after a redirect.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

func (f Flash) Valid() bool {
	switch f.Kind {
	case FlashInfo, FlashSuccess, FlashWarning, FlashError:
		return f.Message != ""
	default:
		return false
	}
}
