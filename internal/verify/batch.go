package verify

import (
	"time"

	"github.com/google/uuid"

	"github.com/sells-group/influencer-matcher/internal/index"
	"github.com/sells-group/influencer-matcher/internal/model"
)

// BatchResult holds the outcomes of a batch run in input order.
type BatchResult struct {
	RunID      string           `json:"run_id"`
	Outcomes   []model.Outcome  `json:"results"`
	Stats      model.BatchStats `json:"stats"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
}

// RunBatch verifies every pair against the same index snapshot. Outcome i
// corresponds to pairs[i]. A malformed pair yields a NO_DATA outcome and is
// counted, never aborting the batch.
func (v *Verifier) RunBatch(ix *index.Index, pairs []model.Pair) BatchResult {
	res := BatchResult{
		RunID:     uuid.NewString(),
		Outcomes:  make([]model.Outcome, len(pairs)),
		StartedAt: time.Now().UTC(),
	}

	for i, p := range pairs {
		o := v.Verify(ix, p.Name, p.Product)
		if p.Malformed() {
			res.Stats.Malformed++
		}
		res.Stats.Add(o)
		res.Outcomes[i] = o
	}

	res.FinishedAt = time.Now().UTC()
	return res
}
