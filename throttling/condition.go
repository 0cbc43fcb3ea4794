// Package throttling decodes the resource governance reason codes that
// SQL Database attaches to error 40501 ("The service is currently
// busy"). A reason code is a packed bit field describing which resource
// dimensions the service is throttling and how severely:
//
//	https://learn.microsoft.com/en-us/azure/azure-sql/database/troubleshoot-common-errors-issues
package throttling

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	mssql "github.com/denisenkom/go-mssqldb"
	"go.uber.org/zap/zapcore"
)

// ErrorNumber is the SQL Database error number signalling that the
// request was rejected by resource governance.
const ErrorNumber = 40501

const (
	modeMask = 0x3
	// The per-resource severity fields start at bit 8 of the reason
	// code and take 2 bits each.
	resourceFieldOffset = 8
	severityMask        = 0x3
	severityFieldBits   = 2
)

// resourceDecodeOrder lists the governed resources in the order their
// severity fields appear in the reason code, low bits first. Both
// internal entries occupy real positions in the packed layout and must
// stay in place for the following fields to line up.
var resourceDecodeOrder = [...]ResourceType{
	ResourcePhysicalDatabaseSpace,
	ResourcePhysicalLogSpace,
	ResourceLogWriteIODelay,
	ResourceDataReadIODelay,
	ResourceCPU,
	ResourceDatabaseSize,
	ResourceInternal,
	ResourceWorkerThreads,
	ResourceInternal,
}

// reasonCodePattern extracts the decimal reason code embedded in the
// message text of error 40501, e.g. "... Incident ID: ... Code: 131075".
var reasonCodePattern = regexp.MustCompile(`(?i)Code:\s*(\d+)`)

// ResourceCondition is the throttling severity of a single governed
// resource dimension.
type ResourceCondition struct {
	Resource ResourceType `json:"resource"`
	Severity Severity     `json:"severity"`
}

func (rc ResourceCondition) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("resource", rc.Resource.String())
	enc.AddString("severity", rc.Severity.String())

	return nil
}

// Condition is the decoded form of a resource governance reason code.
// Values are immutable once constructed by one of the factory
// functions and are safe for concurrent use. A decoded condition
// always carries exactly nine resource entries in decode order; the
// unknown condition carries a single (Unknown, Unknown) entry.
type Condition struct {
	mode      Mode
	resources []ResourceCondition
}

// Unknown returns the condition representing total uncertainty. It is
// the result of every decoding path that cannot produce a definite
// answer. Compare it by content, not identity:
//
//	cond.IsUnknown()
func Unknown() Condition {
	return Condition{
		mode:      ModeUnknown,
		resources: []ResourceCondition{{Resource: ResourceUnknown, Severity: SeverityUnknown}},
	}
}

// FromReasonCode decodes a packed reason code. Bits 0-1 carry the
// throttling mode; starting at bit 8, nine consecutive 2-bit fields
// carry the severity of every resource in decode order. Codes less
// than or equal to zero decode to the unknown condition.
func FromReasonCode(code int) Condition {
	if code <= 0 {
		return Unknown()
	}

	resources := make([]ResourceCondition, 0, len(resourceDecodeOrder))

	remaining := uint64(code) >> resourceFieldOffset
	for _, resource := range resourceDecodeOrder {
		resources = append(resources, ResourceCondition{
			Resource: resource,
			Severity: Severity(remaining & severityMask),
		})
		remaining >>= severityFieldBits
	}

	return Condition{
		mode:      Mode(code & modeMask),
		resources: resources,
	}
}

// FromMessage extracts the reason code embedded in the human-readable
// message of error 40501 and decodes it. Messages without a parsable
// "Code: <n>" marker decode to the unknown condition.
func FromMessage(message string) Condition {
	match := reasonCodePattern.FindStringSubmatch(message)
	if len(match) != 2 {
		return Unknown()
	}

	code, err := strconv.Atoi(match[1])
	if err != nil {
		return Unknown()
	}

	return FromReasonCode(code)
}

// FromError walks err looking for a driver error whose sub-errors
// contain number 40501 and decodes the condition from the first such
// sub-error's message. Anything else, including nil, decodes to the
// unknown condition.
func FromError(err error) Condition {
	if err == nil {
		return Unknown()
	}

	var driverErr mssql.Error
	if !errors.As(err, &driverErr) {
		return Unknown()
	}

	subErrors := driverErr.All
	if len(subErrors) == 0 {
		subErrors = []mssql.Error{driverErr}
	}

	for _, sub := range subErrors {
		if sub.Number == ErrorNumber {
			return FromMessage(sub.Message)
		}
	}

	return Unknown()
}

// Mode reports the server-wide write/read posture of the condition.
func (c Condition) Mode() Mode {
	return c.mode
}

// Resources returns the per-resource severities in decode order. The
// returned slice is a copy; mutating it does not affect the condition.
func (c Condition) Resources() []ResourceCondition {
	out := make([]ResourceCondition, len(c.resources))
	copy(out, c.resources)

	return out
}

// IsUnknown reports whether the condition was produced from an absent
// or undecodable reason code.
func (c Condition) IsUnknown() bool {
	return c.mode == ModeUnknown
}

// IsThrottledOn reports whether the given resource dimension is
// present with a severity other than None. An entry whose severity
// decoded to Unknown counts as throttled.
func (c Condition) IsThrottledOn(resource ResourceType) bool {
	for _, rc := range c.resources {
		if rc.Resource == resource && rc.Severity != SeverityNone {
			return true
		}
	}

	return false
}

func (c Condition) IsThrottledOnDataSpace() bool {
	return c.IsThrottledOn(ResourcePhysicalDatabaseSpace)
}

func (c Condition) IsThrottledOnLogSpace() bool {
	return c.IsThrottledOn(ResourcePhysicalLogSpace)
}

func (c Condition) IsThrottledOnLogWrite() bool {
	return c.IsThrottledOn(ResourceLogWriteIODelay)
}

func (c Condition) IsThrottledOnDataRead() bool {
	return c.IsThrottledOn(ResourceDataReadIODelay)
}

func (c Condition) IsThrottledOnCPU() bool {
	return c.IsThrottledOn(ResourceCPU)
}

func (c Condition) IsThrottledOnDatabaseSize() bool {
	return c.IsThrottledOn(ResourceDatabaseSize)
}

func (c Condition) IsThrottledOnWorkerThreads() bool {
	return c.IsThrottledOn(ResourceWorkerThreads)
}

// String renders the condition as
//
//	Mode: <mode> | <resource>: <severity>, ...
//
// Internal entries are omitted and the remaining pairs are sorted by
// their rendered text. The ordering is a display convenience and is
// independent of decode order.
func (c Condition) String() string {
	pairs := make([]string, 0, len(c.resources))

	for _, rc := range c.resources {
		if rc.Resource == ResourceInternal {
			continue
		}

		pairs = append(pairs, fmt.Sprintf("%s: %s", rc.Resource, rc.Severity))
	}

	sort.Strings(pairs)

	return fmt.Sprintf("Mode: %s | %s", c.mode, strings.Join(pairs, ", "))
}

func (c Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Mode      Mode                `json:"mode"`
		Resources []ResourceCondition `json:"resources"`
	}{
		Mode:      c.mode,
		Resources: c.resources,
	})
}

func (c Condition) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("mode", c.mode.String())

	return enc.AddArray("resources", resourceConditions(c.resources))
}

type resourceConditions []ResourceCondition

func (rcs resourceConditions) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, rc := range rcs {
		if err := enc.AppendObject(rc); err != nil {
			return err
		}
	}

	return nil
}
