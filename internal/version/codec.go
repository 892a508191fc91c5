package version

import (
	"encoding/json"
	"time"

	"github.com/Alijeyrad/uat_backend/internal/question"
)

type versionJSON struct {
	ID         int64                  `json:"id"`
	Stage      LifecycleStage         `json:"lifecycle_stage"`
	SubmitTime time.Time              `json:"submit_time"`
	Questions  []*question.Definition `json:"questions"`
}

func (v *Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(versionJSON{
		ID:         v.id,
		Stage:      v.stage,
		SubmitTime: v.submitTime,
		Questions:  v.questions,
	})
}

func (v *Version) UnmarshalJSON(b []byte) error {
	var w versionJSON
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	decoded, err := New(w.ID, w.Stage, w.SubmitTime, w.Questions...)
	if err != nil {
		return err
	}
	*v = *decoded
	return nil
}
