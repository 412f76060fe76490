package domain

// AuditStatus represents the lifecycle state of a single manifest audit.
type AuditStatus string

const (
	// AuditStatusPending indicates the manifest is waiting to be audited.
	AuditStatusPending AuditStatus = "pending"
	// AuditStatusRunning indicates the audit is in progress.
	AuditStatusRunning AuditStatus = "running"
	// AuditStatusClean indicates the audit finished without error diagnostics.
	AuditStatusClean AuditStatus = "clean"
	// AuditStatusFailed indicates the audit produced error diagnostics or could not run.
	AuditStatusFailed AuditStatus = "failed"
)

// IsTerminal reports whether the status is a final state.
func (s AuditStatus) IsTerminal() bool {
	return s == AuditStatusClean || s == AuditStatusFailed
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
