package throttling

// Mode is the server-wide write/read posture implied by a resource
// governance reason code.
type Mode int

const (
	// ModeUnknown marks a condition whose reason code was absent or
	// could not be decoded. It is never produced by the 2-bit mode
	// field itself.
	ModeUnknown Mode = iota - 1
	ModeNoThrottling
	ModeRejectUpdateInsert
	ModeRejectAllWrites
	ModeRejectAll
)

func (m Mode) String() string {
	switch m {
	case ModeNoThrottling:
		return "NoThrottling"
	case ModeRejectUpdateInsert:
		return "RejectUpdateInsert"
	case ModeRejectAllWrites:
		return "RejectAllWrites"
	case ModeRejectAll:
		return "RejectAll"
	}

	return "Unknown"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Severity is the throttling level of a single governed resource,
// ordered by increasing impact. SeverityUnknown is an in-band value:
// the 2-bit severity field encodes it as 3.
type Severity int

const (
	SeverityNone Severity = iota
	SeveritySoft
	SeverityHard
	SeverityUnknown
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "None"
	case SeveritySoft:
		return "Soft"
	case SeverityHard:
		return "Hard"
	}

	return "Unknown"
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ResourceType identifies a governed resource dimension. The
// non-negative values match the field positions of the reason code
// layout; the negative values are sentinels that never occur there.
type ResourceType int

const (
	// ResourceUnknown appears only in the unknown condition.
	ResourceUnknown ResourceType = iota - 2
	// ResourceInternal is reserved by the service and excluded from
	// the textual rendering.
	ResourceInternal
	ResourcePhysicalDatabaseSpace
	ResourcePhysicalLogSpace
	ResourceLogWriteIODelay
	ResourceDataReadIODelay
	ResourceCPU
	ResourceDatabaseSize
	ResourceWorkerThreads
)

func (r ResourceType) String() string {
	switch r {
	case ResourceInternal:
		return "Internal"
	case ResourcePhysicalDatabaseSpace:
		return "PhysicalDatabaseSpace"
	case ResourcePhysicalLogSpace:
		return "PhysicalLogSpace"
	case ResourceLogWriteIODelay:
		return "LogWriteIoDelay"
	case ResourceDataReadIODelay:
		return "DataReadIoDelay"
	case ResourceCPU:
		return "Cpu"
	case ResourceDatabaseSize:
		return "DatabaseSize"
	case ResourceWorkerThreads:
		return "WorkerThreads"
	}

	return "Unknown"
}

func (r ResourceType) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
