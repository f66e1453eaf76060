package types

// CLIError is the stable, machine-readable error shape surfaced by the tool
type CLIError struct {
	Code        string                 `json:"code"`
	Message     string                 `json:"message"`
	HTTPStatus  int                    `json:"httpStatus,omitempty"`
	DriveReason string                 `json:"driveReason,omitempty"`
	Retryable   bool                   `json:"retryable,omitempty"`
	Context     map[string]interface{} `json:"context,omitempty"`
}

// GlobalFlags holds flags shared by every command
type GlobalFlags struct {
	Profile     string
	Quiet       bool
	Verbose     bool
	Debug       bool
	LogFile     string
	Config      string
	DryRun      bool
	Concurrency int
}
