package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/taskdeck/backend/domain"
)

func marshalActivities(activities []domain.Activity) []byte {
	if activities == nil {
		activities = []domain.Activity{}
	}
	b, err := json.Marshal(activities)
	if err != nil {
		return []byte("[]")
	}
	return b
}

// unmarshalActivities parses the stored document strictly: every element
// must carry an id and a title.
func unmarshalActivities(raw []byte) ([]domain.Activity, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var activities []domain.Activity
	if err := json.Unmarshal(raw, &activities); err != nil {
		return nil, err
	}
	for i, a := range activities {
		if a.ID == "" || a.Title == "" {
			return nil, fmt.Errorf("activity %d missing id or title", i)
		}
	}
	return activities, nil
}
