package entity

// TaskOptions carries the browser session settings taken from CLI input.
type TaskOptions struct {
	Headless       bool
	ViewportWidth  int
	ViewportHeight int
	UserDataDir    string
	StorageState   string
	Verbose        bool
}

// HistoryEntry records one executed browser action.
type HistoryEntry struct {
	Action string `json:"action"`
	Params string `json:"params"`
}

// TaskResult is returned by the runner for every task, failed or not.
type TaskResult struct {
	Success     bool           `json:"success"`
	History     []HistoryEntry `json:"history"`
	FinalURL    string         `json:"final_url,omitempty"`
	FinalAnswer string         `json:"final_answer,omitempty"`
	Error       string         `json:"error,omitempty"`
}
