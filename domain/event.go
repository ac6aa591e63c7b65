package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/goto/salt/audit"
)

const (
	AuditKeyApplicationCreate  = "application.create"
	AuditKeyApplicationUpdate  = "application.update"
	AuditKeyApplicationDelete  = "application.delete"
	AuditKeyApplicationSubmit  = "application.submit"
	AuditKeyApplicationDecide  = "application.decide"
	AuditKeyApplicationCancel  = "application.cancel"
	AuditKeyApplicationArchive = "application.archive"

	auditKeyPrefix = "application."
)

// AuditKeys lists every action the workflow writes to the audit trail
var AuditKeys = []string{
	AuditKeyApplicationCreate,
	AuditKeyApplicationUpdate,
	AuditKeyApplicationDelete,
	AuditKeyApplicationSubmit,
	AuditKeyApplicationDecide,
	AuditKeyApplicationCancel,
	AuditKeyApplicationArchive,
}

func IsValidAuditKey(key string) bool {
	for _, k := range AuditKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Event is one entry of an application's audit trail
type Event struct {
	ApplicationID string         `json:"application_id" yaml:"application_id"`
	Timestamp     time.Time      `json:"timestamp" yaml:"timestamp"`
	Type          string         `json:"type" yaml:"type"`
	Actor         string         `json:"actor" yaml:"actor"`
	Data          map[string]any `json:"data" yaml:"data"`
}

// NewEvent reads an audit log written by the workflow service
func NewEvent(l *audit.Log) (*Event, error) {
	if !strings.HasPrefix(l.Action, auditKeyPrefix) {
		return nil, fmt.Errorf("action %q is not an application event", l.Action)
	}
	data, ok := l.Data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid data type %T", l.Data)
	}
	id, _ := data["application_id"].(string)
	if id == "" {
		return nil, fmt.Errorf("%q log has no application_id", l.Action)
	}

	return &Event{
		ApplicationID: id,
		Timestamp:     l.Timestamp,
		Type:          l.Action,
		Actor:         l.Actor,
		Data:          data,
	}, nil
}

type ListEventsFilter struct {
	ApplicationID string   `mapstructure:"application_id" validate:"omitempty"`
	Types         []string `mapstructure:"types" validate:"omitempty,min=1"`
	Actor         string   `mapstructure:"actor" validate:"omitempty"`
}
