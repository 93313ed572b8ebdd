package interpreter

import (
	"time"

	"github.com/suryamajhi/rlox/pkg/runtime"
)

// defineNatives installs the built-in globals. Native functions declare their
// own arity; calls check it exactly like user functions.
func (i *Interpreter) defineNatives() {
	i.globals.Define("clock", runtime.NativeFunctionValue{
		Name:     "clock",
		ArityVal: 0,
		Impl: func(_ []runtime.Value) (runtime.Value, error) {
			seconds := float64(time.Now().UnixNano()) / float64(time.Second)
			return runtime.NumberValue{Val: seconds}, nil
		},
	})
}
