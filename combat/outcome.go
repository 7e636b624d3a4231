package combat

import (
	"github.com/forgeburn/tagengine/executor"
	"github.com/forgeburn/tagengine/rpgerr"
)

// Outcome is the tagged Success(result) | Rejected(reason) result of an
// activation attempt. Exactly one of Result/Err is meaningful: Rejected
// reports which.
type Outcome struct {
	Result executor.Result
	Err    *rpgerr.Error
}

// Rejected reports whether the activation was refused (insufficient mana
// or on cooldown) rather than executed.
func (o Outcome) Rejected() bool { return o.Err != nil }

func success(r executor.Result) Outcome { return Outcome{Result: r} }

func rejected(err *rpgerr.Error) Outcome { return Outcome{Err: err} }
