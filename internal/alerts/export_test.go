package alerts

import "time"

// SetNowFunc overrides the evaluator clock in tests.
func SetNowFunc(e *Evaluator, now func() time.Time) { e.now = now }
