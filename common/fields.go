package common

import (
	"go.uber.org/zap"

	"github.com/azsqltools/sqlfault-go/throttling"
	"github.com/azsqltools/sqlfault-go/transient"
)

// ThrottlingLogFields renders a throttling condition into structured log
// fields: the mode name under "throttling_mode" and the full condition
// under "throttling_condition".
func ThrottlingLogFields(cond throttling.Condition) []zap.Field {
	return []zap.Field{
		zap.String("throttling_mode", cond.Mode().String()),
		zap.Object("throttling_condition", cond),
	}
}

// ClassificationLogFields renders a classification outcome into structured
// log fields, including the throttling details when present.
func ClassificationLogFields(result transient.Classification) []zap.Field {
	fields := []zap.Field{
		zap.Bool("transient", result.Transient),
	}

	if result.Throttling != nil {
		fields = append(fields, ThrottlingLogFields(*result.Throttling)...)
	}

	return fields
}
