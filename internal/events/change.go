package events

import "time"

// Key resource yang dipakai bus notifikasi. Subscriber mendengarkan key,
// bukan event spesifik, lalu melakukan re-fetch sendiri.
const (
	EmployeesKey = "employees"
	DivisionsKey = "divisions"
)

// Topic relay lintas proses (Kafka). Semua key berbagi satu topic;
// key resource dibawa di payload.
const ChangeTopic = "directory.change.v1"

// ChangeEvent adalah payload publish pada bus. Konsumen tidak mengonsumsi
// nilai ini sebagai data, hanya sebagai sinyal untuk re-fetch.
type ChangeEvent struct {
	EventType  string    `json:"event_type"` // created | updated | deleted
	ResourceID string    `json:"resource_id"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewChangeEvent(eventType, resourceID, requestID string) ChangeEvent {
	return ChangeEvent{
		EventType:  eventType,
		ResourceID: resourceID,
		RequestID:  requestID,
		OccurredAt: time.Now().UTC(),
	}
}
