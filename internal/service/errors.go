package service

import (
	"github.com/straye-as/kontragent-api/internal/database"
	"github.com/straye-as/kontragent-api/internal/domain"
	"github.com/straye-as/kontragent-api/internal/repository"
)

// failureTag picks the execute or exception tag for a failed statement
func failureTag(f *database.Failure, execute, exception domain.ActionTag) domain.ActionTag {
	if f.IsException() {
		return exception
	}
	return execute
}

// sqlPayload describes an executed statement for the activity log
func sqlPayload(ex repository.Executed) map[string]interface{} {
	return map[string]interface{}{
		"sql_query_template": ex.Statement.SQL,
		"sql_query_full":     ex.Statement.Rendered(),
	}
}

// withError adds the driver error text of a failed statement to a payload
func withError(payload map[string]interface{}, f *database.Failure) map[string]interface{} {
	payload["error"] = f.Detail()
	payload["error_kind"] = string(f.Kind)
	return payload
}
